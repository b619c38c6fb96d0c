package handlers

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/mattn/go-isatty"
)

const (
	cRed     = "\u001b[91m"
	cGreen   = "\u001b[92m"
	cYellow  = "\u001b[93m"
	cBlue    = "\u001b[94m"
	cMagenta = "\u001b[95m"
	cCyan    = "\u001b[96m"
	cReset   = "\u001b[0m"
)

// sampleEvery is how many polled requests are collapsed into one log line
const sampleEvery = 10

// sampledPaths are polled by the dashboard and would otherwise flood the log
var sampledPaths = map[string]bool{
	"/api/status": true,
	"/health":     true,
}

func statusColor(status int, enableColors bool) string {
	if !enableColors {
		return ""
	}
	switch {
	case status >= 200 && status < 300:
		return cGreen
	case status >= 300 && status < 400:
		return cBlue
	case status >= 400 && status < 500:
		return cYellow
	default:
		return cRed
	}
}

func methodColor(method string, enableColors bool) string {
	if !enableColors {
		return ""
	}
	switch method {
	case fiber.MethodGet:
		return cCyan
	case fiber.MethodPost:
		return cGreen
	case fiber.MethodDelete:
		return cRed
	default:
		return cMagenta
	}
}

func colorsEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
}

// SamplingLogger logs every request except polled endpoints, which only get
// one line per sampleEvery calls.
func SamplingLogger() fiber.Handler {
	var mu sync.Mutex
	counts := make(map[string]int)
	enableColors := colorsEnabled()

	defaultLogger := fiberlogger.New(fiberlogger.Config{
		Format:        "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		DisableColors: !enableColors,
	})

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !sampledPaths[path] {
			return defaultLogger(c)
		}

		mu.Lock()
		counts[path]++
		count := counts[path]
		if count >= sampleEvery {
			counts[path] = 0
		}
		mu.Unlock()

		if count < sampleEvery {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		method := c.Method()
		reset := ""
		if enableColors {
			reset = cReset
		}
		fmt.Printf("%s | %s%d%s | %13s | %s | %s%s%s | %s | - [sampled: %d calls]\n",
			time.Now().Format("15:04:05"),
			statusColor(status, enableColors), status, reset,
			duration,
			c.IP(),
			methodColor(method, enableColors), method, reset,
			path,
			count)
		return err
	}
}
