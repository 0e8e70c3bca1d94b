package mfdcli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/conf"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/constants"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/database"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/fraud"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/health"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/models/postgres"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/servicemux"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/utils"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/web"
)

func GetApp() *cli.App {
	return setUpApp()
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = constants.Name
	app.Usage = constants.Usage
	app.Version = constants.Version
	var modelPath string
	app.Commands = []cli.Command{
		{
			Name:  "start-api",
			Usage: "Start the API",
			Action: func(c *cli.Context) error {
				db := database.GetDbConnection()

				if err := postgres.EnsureClaimsTable(context.Background(), db); err != nil {
					return err
				}

				api := web.NewAPI(
					postgres.NewRepository(db),
					newClassifier(),
					health.NewHealthChecker(db),
				)

				fmt.Fprintf(app.Writer, "%s\n", "Starting mfd...")

				srv := &http.Server{
					Handler:      web.NewAPIRouter(api),
					ReadTimeout:  time.Duration(utils.GetEnvInt("API_READ_TIMEOUT", 10)) * time.Second,
					WriteTimeout: time.Duration(utils.GetEnvInt("API_WRITE_TIMEOUT", 20)) * time.Second,
					IdleTimeout:  time.Duration(utils.GetEnvInt("API_IDLE_TIMEOUT", 120)) * time.Second,
				}

				smux := servicemux.New(fmt.Sprintf(":%d", utils.GetEnvInt("MFD_API_PORT", 3000)))
				smux.AddServer(srv, "")
				smux.Serve()
				return nil
			},
		},
		{
			Name:  "setup-db",
			Usage: "Create the claims table if it does not exist",
			Action: func(c *cli.Context) error {
				db := database.GetDbConnection()
				defer db.Close()

				if err := postgres.EnsureClaimsTable(context.Background(), db); err != nil {
					return err
				}
				fmt.Fprintf(app.Writer, "%s\n", "Claims table is ready.")
				return nil
			},
		},
		{
			Name:  "generate-model",
			Usage: "Write a default scoring model artifact",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "path",
					Usage:       "Destination file for the scoring model artifact",
					Destination: &modelPath,
				},
			},
			Action: func(c *cli.Context) error {
				if modelPath == "" {
					return fmt.Errorf("path is required")
				}
				if err := writeScoringModel(modelPath); err != nil {
					return err
				}
				fmt.Fprintf(app.Writer, "Scoring model artifact written to %s\n", modelPath)
				return nil
			},
		},
	}
	return app
}

// newClassifier picks the active classifier: the scoring model artifact when
// FRAUD_MODEL_PATH is configured, the fixed rule set otherwise.
func newClassifier() fraud.Classifier {
	if path := conf.GetEnv("FRAUD_MODEL_PATH"); path != "" {
		log.Infof("Using scoring model artifact at %s", path)
		return fraud.NewModelClassifier(path)
	}
	log.Info("FRAUD_MODEL_PATH not set; using the rule classifier")
	return fraud.RuleClassifier{}
}

func writeScoringModel(path string) error {
	data, err := json.MarshalIndent(fraud.DefaultScoringModel(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), append(data, '\n'), 0640)
}
