package utils

import (
	"strconv"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/conf"
)

// GetEnvInt looks up the configuration key and parses it as an int,
// returning defaultVal when the key is absent or unparseable.
func GetEnvInt(varName string, defaultVal int) int {
	if v := conf.GetEnv(varName); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
