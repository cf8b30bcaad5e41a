package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// resultPage is the static display page. It polls the result endpoint
// client-side; the server renders only the request identifier into it.
var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Fact-check result</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
  .claim { border: 1px solid #ddd; border-radius: 8px; padding: 1rem; margin: 1rem 0; }
  .label { font-weight: 600; }
  .label.True { color: #1a7f37; }
  .label.False { color: #cf222e; }
  .label.PartiallyTrue, .label.Unverifiable { color: #9a6700; }
  .muted { color: #666; font-size: 0.9rem; }
  blockquote { border-left: 3px solid #ddd; margin: 0.5rem 0; padding-left: 0.75rem; color: #444; }
</style>
</head>
<body>
<h1>Fact-check result</h1>
<div id="status" class="muted">Loading…</div>
<div id="result"></div>
<script>
const id = {{.RequestID}};
async function load() {
  const resp = await fetch('/api/fact-check/' + encodeURIComponent(id));
  if (resp.status === 404) {
    document.getElementById('status').textContent = 'No result found for this request.';
    return;
  }
  const data = await resp.json();
  if (data.status === 'processing') {
    document.getElementById('status').textContent = 'Still processing… this page refreshes automatically.';
    setTimeout(load, 3000);
    return;
  }
  render(data);
}
function render(data) {
  const el = document.getElementById('result');
  document.getElementById('status').textContent = '';
  let html = '<blockquote>' + esc(data.tweetText) + '</blockquote>';
  if (data.status === 'error') {
    html += '<p class="label False">The fact-check failed.</p>';
  } else {
    html += '<p>' + esc(data.overallAssessment) + '</p>';
    for (const cr of data.claimResults || []) {
      html += '<div class="claim"><div>' + esc(cr.claim) + '</div>'
        + '<div class="label ' + esc(cr.verdict.label) + '">' + esc(cr.verdict.label)
        + ' (' + esc(cr.verdict.confidence) + ' confidence)</div>'
        + '<p>' + esc(cr.verdict.explanation) + '</p>'
        + (cr.sources || []).map(s => '<div class="muted"><a href="' + esc(s) + '">' + esc(s) + '</a></div>').join('')
        + '</div>';
    }
  }
  el.innerHTML = html;
}
function esc(s) {
  return String(s ?? '').replace(/[&<>"']/g, c => ({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c]));
}
load();
</script>
</body>
</html>`))

func (s *Server) handleResultPage(c *gin.Context) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = resultPage.Execute(c.Writer, gin.H{"RequestID": c.Param("id")})
}
