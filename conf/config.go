package conf

/*
   Package conf wraps viper, a package designed to handle configuration
   files, for the medical fraud detection app. Configuration is read once
   from an env file when the package is first loaded; any key not tracked
   by the file is looked up in the process environment instead.

   Assumptions:
   1. The configuration file is an env file.
   2. The configuration file, once made available to the application,
   stays immutable during the uptime of the application (exception is test).
*/

import (
	"os"
	"reflect"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// An instance of the viper struct containing the conf information. Only made
// accessible through public functions GetEnv, SetEnv, etc.
var envVars viper.Viper

// Tracks whether a config file was found and successfully parsed.
const (
	configgood    uint8 = 0
	configbad     uint8 = 1
	noconfigfound uint8 = 2
)

var state = configgood

func setup(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("local")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	// Viper is lazy, do the read and parse of the config file now
	if err := v.ReadInConfig(); err != nil {
		state = configbad
	}
	return v
}

func init() {
	// Possible config file locations: local development and deployed
	// environments respectively.
	locations := []string{
		"../shared_files/decrypted",
		".",
	}

	if found, loc := findEnv(locations); found {
		envVars = *setup(loc)
	} else {
		state = noconfigfound
	}
}

// findEnv walks the candidate locations and reports the first one holding a
// local.env file.
func findEnv(locations []string) (bool, string) {
	for _, loc := range locations {
		if _, err := os.Stat(loc + "/local.env"); err == nil {
			return true, loc
		}
	}
	return false, ""
}

// GetEnv retrieves the value stored in conf. If it does not exist, the
// process environment is consulted; if neither has the key, "" is returned.
func GetEnv(key string) string {
	if state == configgood {
		value := envVars.GetString(key)
		if value == "" {
			// Even if the config file loaded, a key missing from conf may
			// still exist in the environment. Copy it over to conf to
			// prevent additional OS calls. Remember to remove both from
			// conf and the environment when UnsetEnv is called.
			if v, ok := os.LookupEnv(key); ok {
				t := &testing.T{}
				_ = SetEnv(t, key, v)
				value = v
			}
		}
		return value
	}

	return os.Getenv(key)
}

// LookupEnv augments os.LookupEnv to look in the viper struct first.
func LookupEnv(key string) (string, bool) {
	if state == configgood {
		if value := envVars.Get(key); value != nil && value != "" {
			return value.(string), true
		}
		if v, ok := os.LookupEnv(key); ok {
			t := &testing.T{}
			_ = SetEnv(t, key, v)
			return v, ok
		}
		return "", false
	}

	return os.LookupEnv(key)
}

// SetEnv adds key values into conf. This function should only be used either
// in this package itself or testing. The protect parameter is of type
// *testing.T to ensure developers knowingly use it in the appropriate scope.
func SetEnv(protect *testing.T, key string, value string) error {
	var err error
	if state == configgood {
		envVars.Set(key, value)
	} else {
		err = os.Setenv(key, value)
	}
	return err
}

// UnsetEnv "unsets" a variable. Like SetEnv, this should only be used either
// in this package itself or testing.
func UnsetEnv(protect *testing.T, key string) error {
	if state == configgood {
		envVars.Set(key, "")
	}
	// Unset the environment variable too, since GetEnv may have copied it
	// into conf.
	return os.Unsetenv(key)
}

// Checkout populates the provided struct with configuration values.
//
// The argument must be a pointer to a struct (or a []string by value, since
// a slice already acts as a reference). String and int fields are looked up
// by the key named in the field's `conf` tag, falling back to the field name
// for strings. A tag of "-" skips the field. When the lookup comes back
// empty and a `conf_default` tag is present, the default is applied.
func Checkout(v interface{}) error {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.Elem().Kind() != reflect.Struct {
			return errors.New("a pointer provided to Checkout must point to a struct")
		}
		return checkoutStruct(rv.Elem())
	case reflect.Slice:
		slice, ok := v.([]string)
		if !ok {
			return errors.New("only slices of strings are supported by Checkout")
		}
		for i, key := range slice {
			slice[i] = GetEnv(key)
		}
		return nil
	default:
		return errors.New("Checkout requires a pointer to a struct or a []string")
	}
}

func checkoutStruct(rv reflect.Value) error {
	t := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		sf := t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := checkoutStruct(field); err != nil {
				return err
			}
			continue
		}

		if !field.CanSet() {
			continue
		}

		key, tagged := sf.Tag.Lookup("conf")
		if key == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if !tagged {
				key = sf.Name
			}
			value := GetEnv(key)
			if value == "" {
				value = sf.Tag.Get("conf_default")
			}
			field.SetString(value)
		case reflect.Int, reflect.Int32, reflect.Int64:
			// Int fields are only filled when explicitly tagged.
			if !tagged {
				continue
			}
			value := GetEnv(key)
			if value == "" {
				value = sf.Tag.Get("conf_default")
			}
			if value == "" {
				continue
			}
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "could not parse %s as an integer for field %s", value, sf.Name)
			}
			field.SetInt(n)
		}
	}

	return nil
}
