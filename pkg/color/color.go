package color

import (
	"fmt"

	"github.com/muesli/termenv"
)

// ANSI color numbers
const (
	Red       = "1"
	Green     = "2"
	Yellow    = "3"
	Blue      = "4"
	Cyan      = "6"
	Gray      = "8"
	BrightRed = "9"
)

// profile honors NO_COLOR and CLICOLOR_FORCE and falls back to Ascii when stdout is not a terminal
var profile = termenv.EnvColorProfile()

func EnableColor(enable bool) {
	if !enable {
		profile = termenv.Ascii
		return
	}

	if profile == termenv.Ascii {
		profile = termenv.ANSI
	}
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func Colorize(color, text string) string {
	if !IsColorEnabled() {
		return text
	}
	return profile.String(text).Foreground(profile.Color(color)).String()
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	if !IsColorEnabled() {
		return text
	}
	return profile.String(text).Bold().String()
}

func Error(message string) string {
	return BrightRedText("Error: ") + message
}

func Success(message string) string {
	return GreenText("Success: ") + message
}

// ErrorWithPosition formats a message at a source line, with the offending text underneath
func ErrorWithPosition(line int, message, context string) string {
	pos := fmt.Sprintf("line %d", line)
	if !IsColorEnabled() {
		return fmt.Sprintf("Error at %s: %s\n    %s", pos, message, context)
	}

	return fmt.Sprintf("%s at %s: %s\n    %s",
		BrightRedText(BoldText("Error")),
		YellowText(pos),
		message,
		GrayText(context))
}
