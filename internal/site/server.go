package site

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
)

// Preview serves a generated site directory over plain HTTP. It is a
// build-output viewer only; the interactive reader lives behind the full
// server and its websocket session.
func Preview(dir string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)

	if open {
		go openBrowser(url)
	}

	fmt.Printf("Serving site at %s\n", url)
	fmt.Println("Press Ctrl+C to stop.")

	return http.ListenAndServe(addr, http.FileServer(http.Dir(dir)))
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
