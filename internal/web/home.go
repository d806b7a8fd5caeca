package web

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

func Home(flash, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Two Thirds</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Two Thirds</span>
        <h1>Guess two thirds of the average.</h1>
        <p>Open a room, share the code, and see who reads the crowd best.</p>
      </header>
`)
		if flash != "" {
			_, _ = io.WriteString(w, `      <div class="flash">`+html.EscapeString(flash)+`</div>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <div>
          <h2>Host a room</h2>
          <p>Create a room and keep the host key somewhere safe. It is shown once.</p>
        </div>
        <button id="createRoom" class="primary">Create room</button>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <div>
          <h2>Join a room</h2>
          <p>Enter the room code from your host and a display name.</p>
        </div>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Room code" autocomplete="off" maxlength="6" required/>
          <input name="name" placeholder="Display name" autocomplete="name" maxlength="30" value="`+html.EscapeString(name)+`" required/>
          <button type="submit" class="secondary">Join room</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>

    <script>
      const createBtn = document.getElementById("createRoom");
      const createResult = document.getElementById("createResult");
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");

      createBtn.addEventListener("click", async () => {
        createBtn.disabled = true;
        createResult.textContent = "Creating room...";
        try {
          const res = await fetch("/api/rooms", { method: "POST" });
          const data = await res.json();
          if (!res.ok) {
            createResult.textContent = data.error || "Could not create a room.";
            createBtn.disabled = false;
            return;
          }
          sessionStorage.setItem("host_token:" + data.code, data.host_token);
          window.location.href = "/rooms/" + data.code;
        } catch (err) {
          createResult.textContent = "Could not create a room.";
          createBtn.disabled = false;
        }
      });

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
