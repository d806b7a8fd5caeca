package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

func main() {
	name := flag.String("name", "", "migration name, lowercase with underscores")
	flag.Parse()

	if !validName.MatchString(*name) {
		log.Fatal("migration name must match [a-z0-9_]+")
	}

	dir := filepath.Join("db", "migrations")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}

	base := time.Now().UTC().Format("20060102150405") + "_" + *name
	for _, stub := range []struct {
		suffix  string
		content string
	}{
		{".up.sql", "-- up migration\n"},
		{".down.sql", "-- down migration\n"},
	} {
		path := filepath.Join(dir, base+stub.suffix)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		if _, err := f.WriteString(stub.content); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		_ = f.Close()
		log.Printf("created %s", path)
	}
}
