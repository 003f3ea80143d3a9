package cli

const tokenTemplate = `
=== Access Token ===

Version:    {{.Version}}
Issued:     {{.IssuedAt.Format "2006-01-02T15:04:05Z07:00"}}
Expires:    {{.ExpiresAt.Format "2006-01-02T15:04:05Z07:00"}}{{if .Expired}} (expired){{end}}
{{- if .AuthorizedUserID }}
Authorized: {{.AuthorizedUserID}}
{{- end}}
{{- range $kind, $grants := .Sections}}

{{$kind}}:
{{- range $grants}}
  {{.Kind}} {{.Name}}: {{.Permissions}}
{{- end}}
{{- end}}
{{- if .Meta }}

Meta:       {{.Meta}}
{{- end}}
`

const storedTokenTemplate = `
=== Stored Token ===

Token:      {{.Token}}
Saved:      {{.SavedAt.Format "2006-01-02T15:04:05Z07:00"}}
{{- if not .ExpiresAt.IsZero }}
Expires:    {{.ExpiresAt.Format "2006-01-02T15:04:05Z07:00"}}{{if .Expired}} (expired){{end}}
{{- end}}
{{- if .UserID }}
Authorized: {{.UserID}}
{{- end}}
`

const configTemplate = `
=== Configuration ===

Origin:            {{.Origin}}
Subscribe key:     {{.SubscribeKey}}
Publish key:       {{.PublishKey}}
User id:           {{.UserID}}
Auth token:        {{.AuthToken}}
Cipher:            {{if .CipherKey}}{{.CipherKey}} ({{.CipherEncoding}}){{else}}off{{end}}
Filter expression: {{.FilterExpression}}
Heartbeat:         {{.Heartbeat}}
Subscribe timeout: {{.SubscribeTimeout}}
Request timeout:   {{.RequestTimeout}}
Max retries:       {{.MaxRetries}}
Dedupe:            {{if .DedupeOnSubscribe}}on ({{.DedupeCacheSize}}){{else}}off{{end}}
Database:          {{.DBPath}}
Log level:         {{.LogLevel}}
`
