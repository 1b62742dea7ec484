package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// CalendarOptions configures the Google Calendar tools and the auth command.
type CalendarOptions struct {
	Enabled         bool     `json:"enabled"          mapstructure:"enabled"`
	CredentialsFile string   `json:"credentials-file" mapstructure:"credentials-file"`
	TokenFile       string   `json:"token-file"       mapstructure:"token-file"`
	CalendarID      string   `json:"calendar-id"      mapstructure:"calendar-id"`
	TimeZone        string   `json:"time-zone"        mapstructure:"time-zone"`
	Scopes          []string `json:"scopes"           mapstructure:"scopes"`
	// RequestTimeout bounds every Calendar API call.
	RequestTimeout time.Duration `json:"request-timeout" mapstructure:"request-timeout"`
}

func NewCalendarOptions() *CalendarOptions {
	return &CalendarOptions{
		Enabled:         true,
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		CalendarID:      "primary",
		TimeZone:        "Europe/Berlin",
		Scopes:          []string{"https://www.googleapis.com/auth/calendar"},
		RequestTimeout:  30 * time.Second,
	}
}

func (o *CalendarOptions) Validate() []error {
	if !o.Enabled {
		return nil
	}
	var errs []error
	if _, err := time.LoadLocation(o.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("calendar.time-zone: %w", err))
	}
	if o.CalendarID == "" {
		errs = append(errs, fmt.Errorf("calendar.calendar-id is required"))
	}
	if len(o.Scopes) == 0 {
		errs = append(errs, fmt.Errorf("calendar.scopes must not be empty"))
	}
	return errs
}

func (o *CalendarOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "calendar.enabled", o.Enabled, "Expose the Google Calendar tools.")
	fs.StringVar(&o.CredentialsFile, "calendar.credentials-file", o.CredentialsFile, "OAuth client secrets downloaded from the Google Cloud console.")
	fs.StringVar(&o.TokenFile, "calendar.token-file", o.TokenFile, "Where the user token is stored by 'notesd auth'.")
	fs.StringVar(&o.CalendarID, "calendar.calendar-id", o.CalendarID, "Calendar the tools read from and write to.")
	fs.StringVar(&o.TimeZone, "calendar.time-zone", o.TimeZone, "Time zone for created events and for times without an offset.")
	fs.StringSliceVar(&o.Scopes, "calendar.scopes", o.Scopes, "OAuth scopes requested by 'notesd auth'.")
	fs.DurationVar(&o.RequestTimeout, "calendar.request-timeout", o.RequestTimeout, "Timeout of a single Calendar API call.")
}
