package cmd

import (
	"fmt"
	"os"

	"github.com/Daskott/sosphone/gstorage"
	"github.com/Daskott/sosphone/prefs"
	"github.com/Daskott/sosphone/shared"
	"github.com/spf13/cobra"
)

// bucketStub, when set, is used instead of google cloud storage. Only for tests.
var bucketStub gstorage.Bucket

func init() {
	rootCmd.AddCommand(createBackupCmd())
}

func createBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backs up the encrypted preference db to google cloud storage",
		Long: `Copies the encrypted preference db to & from 'google.storage.bucket'.
The db stays encrypted with 'sqlite.passPhrase', so the same pass phrase is needed to use a pulled backup.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "push",
			Short: "Uploads the preference db",
			Args:  cobra.NoArgs,
			RunE:  runE(runBackupPush),
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Replaces the preference db with the uploaded one",
			Args:  cobra.NoArgs,
			RunE:  runE(runBackupPull),
		},
	)

	return cmd
}

func runBackupPush(cmd *cobra.Command, args []string) error {
	cfg, backup, err := openBackup()
	if err != nil {
		return err
	}

	// Make sure the db file holds every write before it's copied
	db, err := prefs.OpenDB(cfg.Sqlite.PassPhrase, cfg.Sosphone.DataDir)
	if err != nil {
		return err
	}
	err = prefs.Checkpoint(db)
	prefs.CloseDB(db)
	if err != nil {
		return err
	}

	dbFilePath, err := prefs.DbFilePath(cfg.Sosphone.DataDir)
	if err != nil {
		return err
	}

	if err = backup.Push(dbFilePath); err != nil {
		return err
	}

	cmd.Printf("Backup pushed to gs://%v/%v\n", cfg.Google.Storage.Bucket, backup.Object(dbFilePath))
	return nil
}

func runBackupPull(cmd *cobra.Command, args []string) error {
	cfg, backup, err := openBackup()
	if err != nil {
		return err
	}

	dbFilePath, err := prefs.DbFilePath(cfg.Sosphone.DataDir)
	if err != nil {
		return err
	}

	err = backup.Pull(dbFilePath)
	if err == gstorage.ErrObjectNotExist {
		return fmt.Errorf("no backup found at gs://%v/%v", cfg.Google.Storage.Bucket, backup.Object(dbFilePath))
	}
	if err != nil {
		return err
	}

	// The write-ahead log belongs to the replaced db
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbFilePath + suffix); err != nil && !os.IsNotExist(err) {
			cmd.Printf("%s unable to remove %v: %v\n", warningLabel, dbFilePath+suffix, err)
		}
	}

	cmd.Printf("Backup pulled from gs://%v/%v\n", cfg.Google.Storage.Bucket, backup.Object(dbFilePath))
	return nil
}

func openBackup() (*shared.Config, *gstorage.Backup, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if isEphemeral {
		return nil, nil, fmt.Errorf("there's nothing to back up with --ephemeral")
	}

	if cfg.Google.Storage.Bucket == "" {
		return nil, nil, formattedError("must set 'google.storage.bucket' in %s", config.ConfigFileUsed())
	}

	bucket := bucketStub
	if bucket == nil {
		gs, err := gstorage.NewGStorage(cfg.Google.ApplicationCredentials, cfg.Google.Storage.Bucket)
		if err != nil {
			return nil, nil, err
		}
		bucket = gs
	}

	return cfg, gstorage.NewBackup(bucket, cfg.Google.Storage.Prefix), nil
}
