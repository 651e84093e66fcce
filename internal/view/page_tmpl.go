package view

// ── Base ──────────────────────────────────────────────────────────────────────

const tmplBase = `{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Power Sensor Monitor</title>
<style>
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif;margin:0;background:#f6f8fa;color:#24292f}
header{padding:12px 20px;background:#24292f;color:#f6f8fa;display:flex;gap:16px;align-items:baseline}
header h1{font-size:18px;margin:0}
main{padding:20px;display:grid;gap:20px;grid-template-columns:repeat(auto-fit,minmax(420px,1fr))}
.card{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:12px}
.status{font-weight:700}
</style>
</head>
<body>
{{end}}`

// ── Dashboard ─────────────────────────────────────────────────────────────────

const tmplDashboard = `{{template "head"}}
<header>
  <h1>Power Sensor Monitor</h1>
  <span>Last power status: <span class="status" id="{{.StatusID}}">{{.Status}}</span></span>
</header>
<main>
{{range .Charts}}  <div class="card"><canvas id="{{.ID}}"></canvas></div>
{{end}}</main>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<script>
{{range .Charts}}new Chart(document.getElementById({{.ID}}), {{.Config}});
{{end}}</script>
</body>
</html>
`

// ── Alert ─────────────────────────────────────────────────────────────────────

const tmplAlert = `{{template "head"}}
<script>alert({{.}});</script>
</body>
</html>
`

// ── Fragment shim ─────────────────────────────────────────────────────────────

const tmplShim = `{{template "head"}}
<script>window.location.replace({{.}} + window.location.hash.slice(1));</script>
</body>
</html>
`
