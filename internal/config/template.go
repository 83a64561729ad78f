package config

import (
	"fmt"
	"os"
)

const defaultTemplate = `# Mastrena simulation server configuration
server:
  addr: 127.0.0.1:3000

brewing:
  temperature: {min: 85, max: 100}   # °C
  pressure: {min: 6, max: 12}        # bar
  time_seconds: {min: 15, max: 40}
  defaults:
    temperature: 93.0
    pressure: 9.0
    time_seconds: 25

storage:
  backend: memory          # memory | sqlite
  # path: mastrena.db

analytics:
  enabled: true
  trend_interval: 5m
  session_window: 10

notify:
  # slack_webhook_url: ${SLACK_WEBHOOK_URL}
  # nats_url: nats://127.0.0.1:4222
  nats_subject: mastrena.alerts

logging:
  level: info
  format: text
`

// WriteDefault writes the default configuration template to path.
// An existing file is preserved unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o644)
}
