package server

import "strings"

func parseRoomPath(path string) (string, string, bool) {
	const prefix = "/api/rooms/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", "", false
	}
	code := parts[0]
	if len(parts) == 1 {
		return code, "", true
	}
	if len(parts) == 2 {
		return code, parts[1], true
	}
	return "", "", false
}

func parsePlayerNumberPath(path string) (string, bool) {
	const prefix = "/api/players/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}
	if parts[1] != "number" {
		return "", false
	}
	return parts[0], true
}

func parseWebsocketPath(path string) (string, bool) {
	const prefix = "/ws/rooms/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

func parseRoomViewPath(path string) (string, bool) {
	const prefix = "/rooms/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	code := strings.TrimPrefix(path, prefix)
	code = strings.Trim(code, "/")
	if code == "" || strings.Contains(code, "/") {
		return "", false
	}
	return code, true
}
