package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	SetLoggerConsole(false)
}

var ColourDisabled bool

const (
	colorRed   = 31
	colorGreen = 32
	colorBold  = 1
)

// V is an escape-analysis helper for logging a single value without the
// compiler deciding the variadic call makes it escape.
func V[T any](value T) string {
	return fmt.Sprintf("%v", value)
}

func SetLevel(level int) {
	switch level {
	case 0:
		log.Logger = log.With().Logger().Level(zerolog.InfoLevel)
	case 1:
		log.Logger = log.With().Logger().Level(zerolog.DebugLevel)
	default:
		log.Logger = log.With().Logger().Level(zerolog.TraceLevel)
	}
}

func SetLoggerConsole(noColour bool) {
	ColourDisabled = noColour
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly, NoColor: noColour}
	cw.FormatLevel = consoleFormatLevel
	cw.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}
	log.Logger = log.With().Logger().Output(cw)
}

func colorize(s interface{}, c int) string {
	if ColourDisabled {
		return fmt.Sprintf("%s", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

func consoleFormatLevel(i any) string {
	ll, _ := i.(string)
	switch ll {
	case zerolog.LevelInfoValue:
		return colorize("| INFO  |", colorGreen)
	case zerolog.LevelWarnValue:
		return colorize("| WARN  |", colorRed)
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return colorize(colorize("| "+ll+" |", colorRed), colorBold)
	default:
		return fmt.Sprintf("| %5s |", ll)
	}
}
