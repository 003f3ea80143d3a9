package models

// StatusCategory категория статусного события подписки
type StatusCategory string

const (
	// StatusConnected первый успешный ответ long-poll для текущего набора каналов
	StatusConnected StatusCategory = "connected"
	// StatusDisconnected цикл подписки остановлен (Stop, отписка или отмена контекста)
	StatusDisconnected StatusCategory = "disconnected"
	// StatusDecodeError один элемент пакета не удалось разобрать, он пропущен
	StatusDecodeError StatusCategory = "decode-error"
	// StatusDecryptError payload не расшифрован, доставлен в исходном виде
	StatusDecryptError StatusCategory = "decrypt-error"
	// StatusMalformedResponse тело ответа не разобрано, но курсор восстановлен
	StatusMalformedResponse StatusCategory = "malformed-response"
	// StatusUnexpected ошибка, остановившая цикл подписки
	StatusUnexpected StatusCategory = "unexpected"
)

// StatusEvent reports subscribe loop state changes and recoverable failures
// to listeners.
type StatusEvent struct {
	Err      error
	Cursor   *Cursor
	Category StatusCategory
	Channels []string
	Groups   []string
}
