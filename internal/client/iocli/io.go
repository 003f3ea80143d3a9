package iocli

//go:generate moq -out io_mock.go . IO

// IO ввод и вывод CLI. Write позволяет использовать IO как io.Writer
// (например, для справки по флагам).
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
