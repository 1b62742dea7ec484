package options

import (
	"github.com/kiosk404/echonote/pkg/logger"
	"github.com/kiosk404/echonote/pkg/utils/cliflag"
	"github.com/kiosk404/echonote/pkg/utils/json"
)

// Options configures the notesd tool server.
type Options struct {
	Log      *logger.Options  `json:"log"      mapstructure:"log"`
	Server   *ServerOptions   `json:"server"   mapstructure:"server"`
	Notes    *NotesOptions    `json:"notes"    mapstructure:"notes"`
	Calendar *CalendarOptions `json:"calendar" mapstructure:"calendar"`
}

func NewOptions() *Options {
	return &Options{
		Log:      logger.NewOptions(),
		Server:   NewServerOptions(),
		Notes:    NewNotesOptions(),
		Calendar: NewCalendarOptions(),
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.Log.AddFlags(fss.FlagSet("log"))
	o.Server.AddFlags(fss.FlagSet("server"))
	o.Notes.AddFlags(fss.FlagSet("notes"))
	o.Calendar.AddFlags(fss.FlagSet("calendar"))
	return fss
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.Log.Validate()...)
	errs = append(errs, o.Server.Validate()...)
	errs = append(errs, o.Notes.Validate()...)
	errs = append(errs, o.Calendar.Validate()...)
	return errs
}

func (o *Options) Complete() error {
	return logger.InitLog(o.Log)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
