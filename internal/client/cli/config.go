package cli

import "text/template"

var configTmpl = template.Must(template.New("config").Parse(configTemplate))

// runConfig выводит итоговую конфигурацию без секретов
func (c *Cli) runConfig() error {
	return configTmpl.Execute(c.io, c.cfg.Redacted())
}
