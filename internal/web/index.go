package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Budget Tracker</title>
<style>
  body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
  textarea, input { width: 100%; box-sizing: border-box; margin-bottom: .5rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  td, th { border: 1px solid #ccc; padding: .25rem .5rem; text-align: start; }
  .ok { color: #2e7d32; } .err { color: #c62828; }
</style>
</head>
<body>
<h1>Budget Tracker</h1>

<h2>Add transaction</h2>
<textarea id="message" rows="4" dir="auto" placeholder="Paste SMS message (Arabic or English)"></textarea>
<button onclick="addTransaction()">Add Transaction</button>
<p id="addResult"></p>

<h2>Summary</h2>
<button onclick="loadSummary()">Show Summary</button>
<div id="summary"></div>

<h2>Ask</h2>
<input id="question" dir="auto" placeholder="Ask a question about your spending">
<button onclick="ask()">Ask</button>
<p id="answer"></p>

<h2>Transactions</h2>
<a href="/api/export/excel">Download Excel</a> · <a href="/api/export/markdown">Download Markdown</a>
<table id="transactions"></table>

<script>
const cols = ["id","operation","card","merchant","amount","balance","timestamp","category"];

function esc(v) {
  const d = document.createElement("div");
  d.textContent = v === undefined || v === null ? "" : String(v);
  return d.innerHTML;
}

async function addTransaction() {
  const out = document.getElementById("addResult");
  const res = await fetch("/api/transactions", {
    method: "POST", headers: {"Content-Type": "application/json"},
    body: JSON.stringify({message: document.getElementById("message").value})
  });
  const body = await res.json();
  if (res.ok) {
    out.className = "ok";
    out.textContent = "Transaction saved with category: " + body.transaction.category;
    loadTransactions();
  } else {
    out.className = "err";
    out.textContent = body.error;
  }
}

async function loadSummary() {
  const body = await (await fetch("/api/summary")).json();
  let html = "<h3>Total Spending</h3><p>" + esc(body.currency) + " " + esc(body.total) + "</p><h3>By Category</h3><ul>";
  for (const c of body.by_category || []) {
    html += "<li>" + esc(c.category) + ": " + esc(body.currency) + " " + esc(Number(c.amount).toFixed(2)) + "</li>";
  }
  document.getElementById("summary").innerHTML = html + "</ul>";
}

async function ask() {
  const res = await fetch("/api/ask", {
    method: "POST", headers: {"Content-Type": "application/json"},
    body: JSON.stringify({question: document.getElementById("question").value})
  });
  const body = await res.json();
  document.getElementById("answer").textContent = res.ok ? body.answer : body.error;
}

async function loadTransactions() {
  const body = await (await fetch("/api/transactions")).json();
  let html = "<tr>" + cols.map(c => "<th>" + c + "</th>").join("") + "</tr>";
  for (const t of body.transactions || []) {
    html += "<tr>" + cols.map(c => "<td dir=\"auto\">" + esc(t[c]) + "</td>").join("") + "</tr>";
  }
  document.getElementById("transactions").innerHTML = html;
}

loadTransactions();
</script>
</body>
</html>
`
