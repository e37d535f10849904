package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// FieldError is one invalid value in a config file
type FieldError struct {
	// Field is the dotted config key, e.g. notifications.task_complete.urgency
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Report is the result of validating one config file
type Report struct {
	Path   string
	Errors []FieldError
}

// Valid reports whether the file had no errors.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateFile checks one config file: JSON syntax, schema shape, and every
// value constraint. An empty file is valid.
func ValidateFile(path string) Report {
	report := Report{Path: path}

	layer, status, err := readLayer(path)
	switch {
	case status == StatusMissing:
		report.Errors = append(report.Errors, FieldError{Field: "file", Message: "does not exist"})
		return report
	case err != nil:
		if clierrors.IsKind(err, clierrors.KindConfigParse) {
			report.Errors = append(report.Errors, FieldError{Field: "json", Message: collapse(errors.Unwrap(err).Error())})
		} else {
			report.Errors = append(report.Errors, FieldError{Field: "file", Message: err.Error()})
		}
		return report
	case layer == nil:
		return report
	}

	problems, err := checkLayer(layer, newValidator())
	report.Errors = append(report.Errors, problems...)
	if err != nil {
		report.Errors = append(report.Errors, FieldError{Field: "schema", Message: collapse(err.Error())})
	}
	return report
}

// readLayer loads one JSON config file. A missing or empty file yields a nil
// layer and no error; malformed JSON is a ConfigParse error.
func readLayer(path string) (*koanf.Koanf, SourceStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, StatusMissing, nil
		}
		return nil, StatusSkipped, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, StatusEmpty, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, StatusSkipped, clierrors.ConfigParse(path, err)
	}
	return k, StatusLoaded, nil
}

// checkLayer validates a parsed layer and deletes every invalid value from it,
// except an unknown backend which is left for backend selection to report.
// A non-nil error means the layer does not fit the schema at all.
func checkLayer(k *koanf.Koanf, v *validator.Validate) ([]FieldError, error) {
	problems := checkRawTypes(k)

	var cfg Config
	if err := decode(k, &cfg); err != nil {
		return problems, err
	}

	if err := v.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return problems, err
		}
		for _, fe := range verrs {
			key := keyPath(fe.Namespace())
			problems = append(problems, FieldError{Field: key, Message: describe(fe)})
			if key != "backend" {
				k.Delete(key)
			}
		}
	}

	sort.SliceStable(problems, func(i, j int) bool { return problems[i].Field < problems[j].Field })
	return problems, nil
}

var (
	enabledKey = regexp.MustCompile(`^(notifications\.[^.]+|quiet_hours)\.enabled$`)
	soundKey   = regexp.MustCompile(`^notifications\.[^.]+\.sound$`)
)

// checkRawTypes catches values whose JSON type cannot be decoded, so one bad
// value does not take the whole file down with it.
func checkRawTypes(k *koanf.Koanf) []FieldError {
	var problems []FieldError
	for _, key := range k.Keys() {
		val := k.Get(key)
		var msg string
		switch {
		case key == "backends.pushover.priority":
			if _, ok := asInt(val); !ok {
				msg = "must be an integer between -2 and 2"
			}
		case enabledKey.MatchString(key):
			if _, ok := val.(bool); !ok {
				msg = "must be true or false"
			}
		case soundKey.MatchString(key):
			switch val.(type) {
			case bool, string, nil:
			default:
				msg = "must be true, false, or a sound name"
			}
		}
		if msg != "" {
			problems = append(problems, FieldError{Field: key, Message: msg})
			k.Delete(key)
		}
	}
	return problems
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// newValidator returns a validator that names fields by their koanf keys and
// knows the config-specific tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("backend", func(fl validator.FieldLevel) bool {
		return notify.ValidBackend(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
	_ = v.RegisterValidation("ntfy_priority", func(fl validator.FieldLevel) bool {
		return notify.ValidNtfyPriority(fl.Field().String())
	})
	_ = v.RegisterValidation("pushover_priority", func(fl validator.FieldLevel) bool {
		return notify.ValidPushoverPriority(int(fl.Field().Int()))
	})
	return v
}

// incompleteQuietHours names the window ends missing from an enabled window.
// Layers merge first, so this only applies to the merged configuration.
func incompleteQuietHours(q QuietHours) []string {
	if !q.Enabled {
		return nil
	}
	var missing []string
	if q.Start == "" {
		missing = append(missing, "quiet_hours.start")
	}
	if q.End == "" {
		missing = append(missing, "quiet_hours.end")
	}
	return missing
}

var indexPattern = regexp.MustCompile(`\[([^\]]*)\]`)

// keyPath turns a validator namespace such as
// "Config.notifications[task_complete].urgency" into the config key
// "notifications.task_complete.urgency".
func keyPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "hhmm":
		return fmt.Sprintf("%q is not a 24-hour HH:MM time", fe.Value())
	case "backend":
		return fmt.Sprintf("unknown backend %q (known: %s)", fe.Value(), strings.Join(notify.Names(), ", "))
	case "ntfy_priority":
		return fmt.Sprintf("%q is not an ntfy priority (min, low, default, high, max, urgent, 1-5)", fe.Value())
	case "pushover_priority":
		return fmt.Sprintf("%v is out of range (must be between -2 and 2)", indirect(fe.Value()))
	case "oneof":
		allowed := strings.Join(strings.Fields(fe.Param()), ", ")
		if strings.HasSuffix(fe.Namespace(), "]") {
			return fmt.Sprintf("unknown notification type (expected one of: %s)", allowed)
		}
		return fmt.Sprintf("%q must be one of: %s", fe.Value(), allowed)
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func indirect(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
