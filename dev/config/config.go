package config

// DEFAULT_SOSPHONE_YML is written to the config path when no config file exists
const DEFAULT_SOSPHONE_YML = `sosphone:
  # Phone numbers are validated against this region's numbering plan
  region: "ES"
  # Where the encrypted preference db is kept (default is $HOME/.sosphone)
  dataDir:
  # Time zone the SOS alarm is set in
  timeZone: "Local"

sqlite:
  # Or set the env var 'SOSPHONE_SQLITE_PASSPHRASE'
  passPhrase:

# Optional, to place emergency calls through twilio instead of
# printing the number to dial
twilio:
  accountSid:
  # Or set the env var 'TWILIO_AUTH_TOKEN'
  authToken:
  from:

# Optional, to back up the preference db with 'sosphone backup push'
google:
  # Or set the env var 'GOOGLE_APPLICATION_CREDENTIALS'
  applicationCredentials:
  storage:
    bucket:
    prefix: "sosphone"
`
