package log

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func init() {
	// Enable debug output so up-to-date file lines are visible
	pterm.EnableDebugMessages()
}

// 📢 UserLogger provides user-friendly feedback about conversions
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 FileChangeType represents the outcome for a schema file
type FileChangeType int

const (
	FileConverted FileChangeType = iota
	FileUpToDate
	FileStale
	FileMissing
	FileError
)

// 🖼️ FileChange represents the outcome of processing one schema file
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileChange logs a file outcome with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	// Get relative path for cleaner output
	relPath := filepath.Base(change.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileConverted:
		prefix = "✨"
		action = "Converted"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case FileUpToDate:
		prefix = "⏭️"
		action = "Up to date"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case FileStale:
		prefix = "🔄"
		action = "Stale"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case FileMissing:
		prefix = "❓"
		action = "Missing"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case FileError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}

// 📊 LogCompletion logs the final completion notice
func (u *UserLogger) LogCompletion(description string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "🎉"}).Println(description)
	u.log.Info().Msg(description)
}
