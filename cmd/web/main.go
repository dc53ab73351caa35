package main

import (
	_ "embed"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tomz197/pong/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	envErr := config.LoadDotEnv()
	logger := config.NewLogger(os.Stderr, "web")
	if envErr != nil {
		logger.Warn("ignoring .env", "err", envErr)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(sshHost)

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newRouter serves the landing page with the SSH host filled in.
func newRouter(sshHost string) *gin.Engine {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}
