package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/mfdcli"
)

func main() {
	if err := mfdcli.GetApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
