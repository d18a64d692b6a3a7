package main

import (
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/status"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

var page = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Space Shooter</title></head>
<body>
<h1>Space Shooter</h1>
<p>Play in your terminal: <code>ssh -t {{.SSHHost}}</code></p>
<h2>High scores</h2>
<table>
{{range .Scores}}<tr><td>{{.Mode}}</td><td>{{.Score}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type modeScore struct {
	Mode  string
	Score int
}

type pageData struct {
	SSHHost string
	Scores  []modeScore
}

// indexHandler renders the landing page with the current high scores.
func indexHandler(sshHost string, store status.HighScores, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{SSHHost: sshHost}
		for _, mode := range config.Modes {
			score, err := store.Load(mode)
			if err != nil {
				logger.Error("load high score", "mode", mode, "err", err)
				http.Error(w, "high scores unavailable", http.StatusInternalServerError)
				return
			}
			data.Scores = append(data.Scores, modeScore{Mode: mode.String(), Score: score})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	}
}

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	settings := config.LoadSettings()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
	})

	http.HandleFunc("/", indexHandler(sshHost, status.NewFileStore(settings.HighScorePath), logger))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
