package site

// pageTemplate is the Go html/template for each chapter page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Chapter.Title}} — {{.SiteName}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body data-chapter="{{.Chapter.Slug}}">
  <div class="reading-progress"><div class="reading-progress-fill" id="reading-progress"></div></div>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <a href="index.html" class="site-title">{{.SiteName}}</a>
      <input type="text" id="search-input" placeholder="Search the book..." autocomplete="off">
      <div class="search-results" id="search-results"></div>
    </div>
    <div class="sidebar-chapter">
      <span class="chapter-icon">{{.Chapter.Icon}}</span>
      <span class="chapter-title">{{.Chapter.Title}}</span>
      <span class="chapter-meta">{{.Chapter.ReadingTime}} min · {{.Chapter.Difficulty}}</span>
    </div>
    <div class="sidebar-toc" id="sidebar-toc">
      {{.SidebarHTML}}
    </div>
  </nav>
  <main class="content">
    <article class="chapter-body" id="chapter-body">
      {{.Content}}
    </article>
    <nav class="chapter-nav">
      {{if .Previous}}<a class="chapter-nav-link prev" href="{{.Previous.Slug}}.html">&larr; {{.Previous.Title}}</a>{{else}}<span></span>{{end}}
      {{if .Next}}<a class="chapter-nav-link next" href="{{.Next.Slug}}.html">{{.Next.Title}} &rarr;</a>{{end}}
    </nav>
  </main>
  <div class="keyboard-help" id="keyboard-help" hidden>
    <h3>Keyboard shortcuts</h3>
    <dl>
      <dt>j / &darr;</dt><dd>Next section</dd>
      <dt>k / &uarr;</dt><dd>Previous section</dd>
      <dt>g / Home</dt><dd>Top of chapter</dd>
      <dt>Shift+G / End</dt><dd>Bottom of chapter</dd>
      <dt>t</dt><dd>Toggle contents</dd>
      <dt>u</dt><dd>Copy section link</dd>
      <dt>?</dt><dd>This help</dd>
    </dl>
  </div>
  <script src="reader.js"></script>
</body>
</html>`

// indexTemplate is the Go html/template for the landing page.
const indexTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.SiteName}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <main class="index-content">
    <h1>{{.SiteName}}</h1>
    <p class="index-tagline">The mathematics behind machine learning, one interactive chapter at a time.</p>
    <div class="chapter-grid">
      {{range .Chapters}}
      {{if .Written}}<a class="chapter-card" href="{{.Chapter.Slug}}.html">{{else}}<div class="chapter-card chapter-card-soon">{{end}}
        <span class="chapter-icon">{{.Chapter.Icon}}</span>
        <h2>{{.Chapter.Title}}</h2>
        <p>{{.Chapter.Description}}</p>
        <span class="chapter-meta">{{.Chapter.ReadingTime}} min · {{.Chapter.Difficulty}}{{if not .Written}} · coming soon{{end}}</span>
      {{if .Written}}</a>{{else}}</div>{{end}}
      {{end}}
    </div>
  </main>
</body>
</html>`

// cssContent is the stylesheet for the generated site.
const cssContent = `/* ============ Variables ============ */
:root {
  --bg: #ffffff;
  --bg-sidebar: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #4263eb;
  --accent-light: #edf2ff;
  --code-bg: #f1f3f5;
  --sidebar-width: 300px;
  --header-offset: 80px;
  --content-max-width: 760px;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.65;
}

/* ============ Reading progress ============ */
.reading-progress {
  position: fixed;
  top: 0; left: 0; right: 0;
  height: 3px;
  background: var(--border);
  z-index: 100;
}
.reading-progress-fill {
  height: 100%;
  width: 0;
  background: var(--accent);
  transition: width 120ms linear;
}

/* ============ Sidebar ============ */
.sidebar {
  position: fixed;
  top: 3px; bottom: 0; left: 0;
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  overflow-y: auto;
  padding: 1.25rem 1rem;
}
.sidebar.collapsed { display: none; }
.site-title {
  display: block;
  font-weight: 700;
  color: var(--text);
  text-decoration: none;
  margin-bottom: 0.75rem;
}
#search-input {
  width: 100%;
  padding: 0.4rem 0.6rem;
  border: 1px solid var(--border);
  border-radius: 6px;
  font-size: 0.85rem;
}
.search-results { font-size: 0.85rem; }
.search-results a {
  display: block;
  padding: 0.3rem 0.4rem;
  color: var(--text);
  text-decoration: none;
  border-radius: 4px;
}
.search-results a:hover { background: var(--accent-light); }
.search-results .search-chapter { color: var(--text-muted); font-size: 0.75rem; }
.sidebar-chapter {
  margin: 1rem 0 0.5rem;
  display: flex;
  flex-direction: column;
  gap: 0.15rem;
}
.chapter-icon { font-size: 1.2rem; }
.chapter-title { font-weight: 600; }
.chapter-meta { color: var(--text-muted); font-size: 0.8rem; }

/* ============ Table of contents ============ */
.toc-list { list-style: none; margin: 0; padding-left: 0; }
.toc-list .toc-list { padding-left: 0.9rem; }
.toc-link {
  display: block;
  padding: 0.25rem 0.5rem;
  color: var(--text-muted);
  text-decoration: none;
  font-size: 0.88rem;
  border-left: 2px solid transparent;
  border-radius: 0 4px 4px 0;
}
.toc-link:hover { color: var(--text); }
.toc-link.active {
  color: var(--accent);
  border-left-color: var(--accent);
  background: var(--accent-light);
}

/* ============ Content ============ */
.content {
  margin-left: var(--sidebar-width);
  padding: 2rem 3rem 4rem;
}
.sidebar.collapsed ~ .content { margin-left: 0; }
.chapter-body { max-width: var(--content-max-width); }
.chapter-body h1, .chapter-body h2, .chapter-body h3,
.chapter-body h4, .chapter-body h5, .chapter-body h6 {
  scroll-margin-top: var(--header-offset);
}
.chapter-body pre {
  background: var(--code-bg);
  padding: 0.9rem 1rem;
  border-radius: 8px;
  overflow-x: auto;
}
.chapter-body code { font-size: 0.9em; }
.chapter-body table { border-collapse: collapse; }
.chapter-body th, .chapter-body td {
  border: 1px solid var(--border);
  padding: 0.4rem 0.7rem;
}
.chapter-body blockquote {
  margin: 1rem 0;
  padding: 0.25rem 1rem;
  border-left: 3px solid var(--accent);
  background: var(--accent-light);
}

.chapter-nav {
  max-width: var(--content-max-width);
  display: flex;
  justify-content: space-between;
  margin-top: 3rem;
  padding-top: 1rem;
  border-top: 1px solid var(--border);
}
.chapter-nav-link { color: var(--accent); text-decoration: none; }

/* ============ Index page ============ */
.index-content { max-width: 900px; margin: 0 auto; padding: 3rem 2rem; }
.index-tagline { color: var(--text-muted); }
.chapter-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(260px, 1fr));
  gap: 1rem;
  margin-top: 2rem;
}
.chapter-card {
  display: block;
  padding: 1.25rem;
  border: 1px solid var(--border);
  border-radius: 10px;
  color: var(--text);
  text-decoration: none;
}
.chapter-card:hover { border-color: var(--accent); }
.chapter-card h2 { font-size: 1.05rem; margin: 0.5rem 0 0.25rem; }
.chapter-card p { color: var(--text-muted); font-size: 0.88rem; margin: 0 0 0.5rem; }
.chapter-card-soon { opacity: 0.55; }

/* ============ Keyboard help ============ */
.keyboard-help {
  position: fixed;
  bottom: 1.5rem; right: 1.5rem;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 10px;
  padding: 1rem 1.25rem;
  box-shadow: 0 4px 12px rgba(0,0,0,0.1);
  z-index: 50;
}
.keyboard-help dl {
  display: grid;
  grid-template-columns: auto auto;
  gap: 0.2rem 1rem;
  margin: 0.5rem 0 0;
  font-size: 0.85rem;
}
.keyboard-help dt { font-family: monospace; }
.keyboard-help dd { margin: 0; color: var(--text-muted); }

@media (max-width: 900px) {
  .sidebar { display: none; }
  .content { margin-left: 0; padding: 1.5rem; }
}
`

// jsContent is the reader script for the generated site. It mirrors the
// server-side navigation engine for the static build: section tracking
// against a fixed header offset, smooth scrolling, keyboard shortcuts,
// and lexical search over the generated index.
const jsContent = `(function () {
  'use strict';

  var HEADER_OFFSET = 80;
  var body = document.getElementById('chapter-body');
  if (!body) return;

  var headings = Array.prototype.slice.call(
    body.querySelectorAll('h1[id], h2[id], h3[id], h4[id], h5[id], h6[id]')
  );
  var tocLinks = {};
  document.querySelectorAll('.toc-link[data-section]').forEach(function (a) {
    tocLinks[a.dataset.section] = a;
  });

  var reduceMotion = window.matchMedia('(prefers-reduced-motion: reduce)').matches;

  function headingTops() {
    return headings.map(function (h) {
      return { id: h.id, top: h.getBoundingClientRect().top + window.scrollY };
    });
  }

  function activeSection() {
    var line = window.scrollY + HEADER_OFFSET;
    var tops = headingTops();
    var active = null;
    for (var i = 0; i < tops.length; i++) {
      if (tops[i].top <= line + 1) active = tops[i].id;
    }
    return active || (tops.length ? tops[0].id : null);
  }

  function updateActive() {
    var active = activeSection();
    Object.keys(tocLinks).forEach(function (id) {
      tocLinks[id].classList.toggle('active', id === active);
    });
    var doc = document.documentElement;
    var max = doc.scrollHeight - window.innerHeight;
    var progress = max > 0 ? Math.min(1, Math.max(0, window.scrollY / max)) : 0;
    var fill = document.getElementById('reading-progress');
    if (fill) fill.style.width = (progress * 100) + '%';
  }

  function scrollToSection(id, push) {
    var h = document.getElementById(id);
    if (!h) return;
    var top = h.getBoundingClientRect().top + window.scrollY - HEADER_OFFSET;
    window.scrollTo({ top: Math.max(0, top), behavior: reduceMotion ? 'auto' : 'smooth' });
    if (push) history.pushState(null, '', '#' + id);
    else history.replaceState(null, '', '#' + id);
  }

  function neighbor(delta) {
    var line = window.scrollY + HEADER_OFFSET;
    var tops = headingTops();
    if (delta > 0) {
      for (var i = 0; i < tops.length; i++) {
        if (tops[i].top > line + 1) return tops[i].id;
      }
      return null;
    }
    for (var j = tops.length - 1; j >= 0; j--) {
      if (tops[j].top < line - 1) return tops[j].id;
    }
    return null;
  }

  // Throttled scroll tracking.
  var ticking = false;
  window.addEventListener('scroll', function () {
    if (ticking) return;
    ticking = true;
    requestAnimationFrame(function () {
      ticking = false;
      updateActive();
    });
  }, { passive: true });

  // ToC clicks scroll smoothly instead of jumping.
  Object.keys(tocLinks).forEach(function (id) {
    tocLinks[id].addEventListener('click', function (ev) {
      ev.preventDefault();
      scrollToSection(id, true);
    });
  });

  // Keyboard shortcuts.
  var lastKey = 0;
  document.addEventListener('keydown', function (ev) {
    if (ev.target.tagName === 'INPUT' || ev.target.tagName === 'TEXTAREA') return;
    var now = Date.now();
    if (now - lastKey < 100) return;

    var handled = true;
    if ((ev.key === 'j' || ev.key === 'ArrowDown') && !ev.shiftKey) {
      var next = neighbor(1);
      if (next) scrollToSection(next, false);
    } else if ((ev.key === 'k' || ev.key === 'ArrowUp') && !ev.shiftKey) {
      var prev = neighbor(-1);
      if (prev) scrollToSection(prev, false);
    } else if (ev.key === 'g' || ev.key === 'Home') {
      window.scrollTo({ top: 0, behavior: reduceMotion ? 'auto' : 'smooth' });
    } else if ((ev.key === 'G' && ev.shiftKey) || ev.key === 'End') {
      window.scrollTo({
        top: document.documentElement.scrollHeight,
        behavior: reduceMotion ? 'auto' : 'smooth'
      });
    } else if (ev.key === 't') {
      var sidebar = document.getElementById('sidebar');
      if (sidebar) sidebar.classList.toggle('collapsed');
    } else if (ev.key === 'u') {
      var active = activeSection();
      if (active && navigator.clipboard) {
        var url = location.origin + location.pathname + '#' + active;
        navigator.clipboard.writeText(url);
      }
    } else if (ev.key === '?') {
      var help = document.getElementById('keyboard-help');
      if (help) help.hidden = !help.hidden;
    } else {
      handled = false;
    }
    if (handled) {
      ev.preventDefault();
      lastKey = now;
    }
  });

  // Lexical search over the generated index.
  var searchInput = document.getElementById('search-input');
  var searchResults = document.getElementById('search-results');
  var searchIndex = null;
  if (searchInput && searchResults) {
    searchInput.addEventListener('input', function () {
      var q = searchInput.value.trim().toLowerCase();
      if (!q) { searchResults.innerHTML = ''; return; }
      var run = function () {
        var hits = searchIndex.filter(function (e) {
          return (e.title + ' ' + e.content).toLowerCase().indexOf(q) !== -1;
        }).slice(0, 8);
        searchResults.innerHTML = hits.map(function (e) {
          return '<a href="' + e.path + '">' + e.title +
            '<span class="search-chapter"> — ' + e.chapter + '</span></a>';
        }).join('');
      };
      if (searchIndex) { run(); return; }
      fetch('search-index.json')
        .then(function (r) { return r.json(); })
        .then(function (idx) { searchIndex = idx; run(); });
    });
  }

  if (location.hash) {
    var target = location.hash.slice(1);
    requestAnimationFrame(function () { scrollToSection(target, false); });
  }
  updateActive();
})();
`
