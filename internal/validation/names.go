package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameLen максимальная длина имени канала, группы или пользователя
	MaxNameLen = 92
)

// GroupPattern определяет допустимый формат имени группы каналов
// Только латинские буквы, цифры, подчеркивание, дефис и точка
var GroupPattern = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)

// channelForbidden символы, которые сервер использует как разделители
const channelForbidden = ",/\\.*:"

// ValidateChannel проверяет имя канала.
// Запрещены пустые имена, разделители ",/\.*:" и непечатаемые символы.
func ValidateChannel(channel string) error {
	if err := validateLength("channel name", channel); err != nil {
		return err
	}
	if i := strings.IndexAny(channel, channelForbidden); i >= 0 {
		return fmt.Errorf("channel name cannot contain %q", channel[i])
	}
	for _, r := range channel {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("channel name cannot contain whitespace or control characters")
		}
	}
	return nil
}

// ValidateGroup проверяет имя группы каналов
func ValidateGroup(group string) error {
	if err := validateLength("channel group name", group); err != nil {
		return err
	}
	if !GroupPattern.MatchString(group) {
		return fmt.Errorf("channel group name can only contain letters (a-z, A-Z), numbers (0-9), underscores (_), dashes (-) and periods (.)")
	}
	return nil
}

// ValidateUserID проверяет идентификатор пользователя
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	if err := validateLength("user id", userID); err != nil {
		return err
	}
	for _, r := range userID {
		if unicode.IsControl(r) {
			return fmt.Errorf("user id cannot contain control characters")
		}
	}
	return nil
}

// ValidateChannels проверяет список каналов и групп; хотя бы одно имя обязательно
func ValidateChannels(channels, groups []string) error {
	if len(channels) == 0 && len(groups) == 0 {
		return fmt.Errorf("at least one channel or channel group is required")
	}
	for _, ch := range channels {
		if err := ValidateChannel(ch); err != nil {
			return fmt.Errorf("invalid channel %q: %w", ch, err)
		}
	}
	for _, g := range groups {
		if err := ValidateGroup(g); err != nil {
			return fmt.Errorf("invalid channel group %q: %w", g, err)
		}
	}
	return nil
}

func validateLength(what, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("%s must not exceed %d characters", what, MaxNameLen)
	}
	return nil
}
