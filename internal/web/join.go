package web

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

func JoinView(code, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Join - Two Thirds</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Two Thirds</span>
        <h1>Join a room</h1>
      </header>

      <section class="panel">
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Room code" autocomplete="off" maxlength="6" value="`+html.EscapeString(code)+`" required/>
          <input name="name" placeholder="Display name" autocomplete="name" maxlength="30" value="`+html.EscapeString(name)+`" required/>
          <button type="submit" class="primary">Join room</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>

    <script>
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const code = joinForm.elements.code.value.trim().toUpperCase();
        const name = joinForm.elements.name.value.trim();
        joinResult.textContent = "Joining...";
        try {
          const res = await fetch("/api/rooms/" + encodeURIComponent(code) + "/join", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({ name }),
          });
          const data = await res.json();
          if (!res.ok) {
            joinResult.textContent = data.error || "Could not join that room.";
            return;
          }
          sessionStorage.setItem("player_id:" + code, data.player_id);
          window.location.href = "/rooms/" + code;
        } catch (err) {
          joinResult.textContent = "Could not join that room.";
        }
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
