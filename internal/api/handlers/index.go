package handlers

import "net/http"

// Index serves the single-page synthesis form. The page is a thin shell
// over the JSON API; all behavior lives server-side.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexPage))
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Text-to-Speech</title>
<style>
body { font-family: sans-serif; max-width: 760px; margin: 0 auto; padding: 20px; }
textarea { width: 100%; height: 100px; margin: 10px 0; }
select, input { margin: 5px 0; padding: 6px; }
button { padding: 10px 20px; cursor: pointer; }
.row { margin: 8px 0; }
</style>
</head>
<body>
<h1>Text-to-Speech</h1>
<form id="form">
  <div class="row"><textarea id="text" placeholder="Enter text" required></textarea></div>
  <div class="row">
    <label for="backend">Backend:</label>
    <select id="backend">
      <option value="local-engine">Local engine (offline)</option>
      <option value="cloud-basic">Cloud basic (free)</option>
      <option value="cloud-premium-a">Cloud premium A</option>
      <option value="cloud-premium-b">Cloud premium B</option>
      <option value="neural-cloning">Neural cloning</option>
    </select>
  </div>
  <div class="row">
    <label for="voice">Voice:</label>
    <select id="voice"><option value="">Default</option></select>
  </div>
  <div class="row">
    <label for="rate">Rate:</label>
    <input type="range" id="rate" min="50" max="300" value="150">
    <label for="volume">Volume:</label>
    <input type="range" id="volume" min="0" max="1" step="0.1" value="1">
  </div>
  <button type="submit">Generate</button>
</form>
<div id="result" style="display:none">
  <audio controls id="player"></audio>
  <p id="status"></p>
</div>
<script>
let voices = [];
async function loadVoices() {
  voices = await (await fetch('/api/v1/voices')).json();
  updateVoices();
}
function updateVoices() {
  const sel = document.getElementById('voice');
  const b = document.getElementById('backend').value;
  sel.innerHTML = '<option value="">Default</option>';
  voices.filter(v => v.backend_id === b).forEach(v => {
    const o = document.createElement('option');
    o.value = v.name;
    o.textContent = v.name + ' (' + v.language + ')';
    sel.appendChild(o);
  });
}
document.getElementById('backend').addEventListener('change', updateVoices);
document.getElementById('form').addEventListener('submit', async e => {
  e.preventDefault();
  const body = {
    text: document.getElementById('text').value,
    backend_id: document.getElementById('backend').value,
    voice_name: document.getElementById('voice').value || undefined,
    rate: parseInt(document.getElementById('rate').value),
    volume: parseFloat(document.getElementById('volume').value)
  };
  const res = await (await fetch('/api/v1/synthesize', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify(body)
  })).json();
  document.getElementById('result').style.display = 'block';
  document.getElementById('status').textContent = res.message;
  if (res.success) {
    document.getElementById('player').src = '/audio/' + res.artifact_path.split('/').pop();
  }
});
loadVoices();
</script>
</body>
</html>
`
