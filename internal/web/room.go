package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RoomView renders the live room shell. The code is validated against the
// room-code alphabet before it gets here, so embedding it is safe.
func RoomView(code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Room `+code+` - Two Thirds</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Room `+code+`</span>
        <h1 id="roomStatus">Waiting for players...</h1>
        <p>Share the code <strong>`+code+`</strong> so others can join.</p>
      </header>

      <section class="panel">
        <h2>Players</h2>
        <ul id="playerList" class="player-list"></ul>
      </section>

      <section class="panel" id="submitPanel" hidden>
        <h2>Your guess</h2>
        <p>Pick a whole number from 1 to 100. You only get one shot.</p>
        <form id="numberForm" class="join-form">
          <input name="number" type="number" min="1" max="100" step="1" required/>
          <button type="submit" class="primary">Lock it in</button>
        </form>
        <div id="submitResult" class="result"></div>
      </section>

      <section class="panel" id="hostPanel" hidden>
        <h2>Host controls</h2>
        <button id="revealBtn" class="primary">Reveal results</button>
        <button id="restartBtn" class="secondary">Play again</button>
        <div id="hostResult" class="result"></div>
      </section>

      <section class="panel" id="resultsPanel" hidden>
        <h2>Results</h2>
        <div id="resultsBody"></div>
      </section>
    </main>

    <script>
      const code = "`+code+`";
      const playerId = sessionStorage.getItem("player_id:" + code);
      const hostToken = sessionStorage.getItem("host_token:" + code);

      const statusEl = document.getElementById("roomStatus");
      const playerList = document.getElementById("playerList");
      const submitPanel = document.getElementById("submitPanel");
      const hostPanel = document.getElementById("hostPanel");
      const resultsPanel = document.getElementById("resultsPanel");
      const resultsBody = document.getElementById("resultsBody");
      const submitResult = document.getElementById("submitResult");
      const hostResult = document.getElementById("hostResult");

      function esc(text) {
        const span = document.createElement("span");
        span.textContent = text;
        return span.innerHTML;
      }

      function render(state) {
        const revealed = state.room.status === "revealed";
        statusEl.textContent = revealed
          ? "Results are in!"
          : state.players.length + " player(s) in the room";
        playerList.innerHTML = state.players
          .map((p) => "<li>" + esc(p.name) + (revealed && p.number !== undefined
            ? " - " + p.number
            : p.submitted ? " ✓" : " …") + "</li>")
          .join("");
        submitPanel.hidden = revealed || !playerId;
        hostPanel.hidden = !hostToken;
        resultsPanel.hidden = !revealed;
        if (revealed && state.results) {
          const winners = state.results.winners
            .map((win) => esc(win.name) + " (" + win.number + ")")
            .join(", ");
          resultsBody.innerHTML =
            "<p>Average: " + state.results.average.toFixed(2) + "</p>" +
            "<p>Two thirds: " + state.results.two_thirds.toFixed(2) + "</p>" +
            "<p>Winner(s): " + winners + "</p>";
        }
      }

      async function refetch() {
        const res = await fetch("/api/rooms/" + code);
        if (res.ok) {
          render(await res.json());
        }
      }

      function connect() {
        const proto = window.location.protocol === "https:" ? "wss" : "ws";
        const socket = new WebSocket(proto + "://" + window.location.host + "/ws/rooms/" + code);
        socket.onmessage = (event) => {
          try {
            render(JSON.parse(event.data));
          } catch (err) {
            refetch();
          }
        };
        socket.onclose = () => setTimeout(connect, 2000);
      }

      document.getElementById("numberForm").addEventListener("submit", async (event) => {
        event.preventDefault();
        const number = parseInt(event.target.elements.number.value, 10);
        submitResult.textContent = "Submitting...";
        const res = await fetch("/api/players/" + playerId + "/number", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ number }),
        });
        const data = await res.json();
        submitResult.textContent = res.ok ? "Locked in." : (data.error || "Could not submit.");
      });

      async function hostAction(action) {
        hostResult.textContent = "...";
        const res = await fetch("/api/rooms/" + code + "/" + action, {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ host_token: hostToken }),
        });
        const data = await res.json();
        hostResult.textContent = res.ok ? "" : (data.error || "Action failed.");
      }

      document.getElementById("revealBtn").addEventListener("click", () => hostAction("reveal"));
      document.getElementById("restartBtn").addEventListener("click", () => hostAction("restart"));

      refetch();
      connect();
    </script>
  </body>
</html>
`)
		return nil
	})
}
