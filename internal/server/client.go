package server

import "net/http"

// handleClientScript serves the browser half of the websocket session: it
// mirrors the page's heading geometry and the reader's scroll, resize, key,
// and hashchange events into the server, and applies the state, scroll, and
// URL commands the navigation engine pushes back.
func handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(clientScript))
}

const clientScript = `(function () {
  'use strict';

  var container = document.getElementById('chapter-body') || document.body;
  var chapter = document.body.dataset.chapter || '';

  var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  var ws = new WebSocket(proto + '//' + location.host + '/ws/session?chapter=' + encodeURIComponent(chapter));

  var lastCommanded = -1;

  function headingPayload() {
    var out = [];
    container.querySelectorAll('h1[id], h2[id], h3[id], h4[id], h5[id], h6[id]').forEach(function (h) {
      var box = h.getBoundingClientRect();
      out.push({ id: h.id, title: h.textContent.trim(), level: +h.tagName[1], top: box.top, height: box.height });
    });
    return out;
  }

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  function sendLayout() {
    send({
      type: 'layout',
      headings: headingPayload(),
      documentHeight: document.documentElement.scrollHeight,
      viewportHeight: window.innerHeight
    });
  }

  ws.addEventListener('open', function () {
    sendLayout();
    if (location.hash) send({ type: 'hashchange', hash: location.hash.slice(1) });
  });

  ws.addEventListener('message', function (raw) {
    var msg = JSON.parse(raw.data);
    switch (msg.type) {
      case 'state':
        document.dispatchEvent(new CustomEvent('nav:state', { detail: msg.state }));
        break;
      case 'scroll-to':
        // The engine echoes positions we already hold; only move for new ones.
        if (Math.abs(window.scrollY - msg.scrollTop) > 1) {
          lastCommanded = msg.scrollTop;
          window.scrollTo(0, msg.scrollTop);
        }
        break;
      case 'url':
        if ('#' + msg.hash !== location.hash) {
          history.replaceState(null, '', '#' + msg.hash);
        }
        break;
      case 'copied':
        if (navigator.clipboard) navigator.clipboard.writeText(msg.url);
        break;
    }
  });

  var scrollQueued = false;
  window.addEventListener('scroll', function () {
    if (scrollQueued) return;
    scrollQueued = true;
    requestAnimationFrame(function () {
      scrollQueued = false;
      if (Math.abs(window.scrollY - lastCommanded) <= 1) return;
      send({ type: 'scroll', scrollTop: window.scrollY });
    });
  }, { passive: true });

  window.addEventListener('resize', function () {
    send({ type: 'resize', viewportHeight: window.innerHeight });
  });

  window.addEventListener('hashchange', function () {
    send({ type: 'hashchange', hash: location.hash.slice(1) });
  });

  ['wheel', 'touchstart'].forEach(function (name) {
    window.addEventListener(name, function () {
      send({ type: 'input' });
    }, { passive: true });
  });

  document.addEventListener('keydown', function (ev) {
    var typing = ev.target.tagName === 'INPUT' || ev.target.tagName === 'TEXTAREA' || ev.target.isContentEditable;
    send({
      type: 'key',
      key: { key: ev.key, ctrl: ev.ctrlKey, alt: ev.altKey, shift: ev.shiftKey, meta: ev.metaKey, typing: typing }
    });
  });

  document.addEventListener('click', function (ev) {
    var a = ev.target.closest('a[href^="#"]');
    if (!a) return;
    ev.preventDefault();
    send({ type: 'navigate', target: a.getAttribute('href').slice(1) });
  });

  new MutationObserver(sendLayout).observe(container, { childList: true, subtree: true });
})();
`
