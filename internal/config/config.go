package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// External services
	GMapsAPIKey      string
	TwilioAccountSID string
	TwilioAuthToken  string
	SendGridAPIKey   string
	OpenAIAPIKey     string

	// Proof photo storage
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Auth
	RSAPrivateKey     *rsa.PrivateKey
	RSAPublicKey      *rsa.PublicKey
	AccessTokenExpiry time.Duration

	// LaunchDarkly flags
	LDFlag_UseGMapsGeocoding       bool
	LDFlag_OpenAIPhotoVerification bool
	LDFlag_SeedDbWithTestData      bool
	LDFlag_CORSHighSecurity        bool
	LDFlag_SendgridSandboxMode     bool
	LDFlag_SendgridFromEmail       string
	LDFlag_TwilioFromPhone         string
}

const (
	AppName             = "binbird-backend"
	LDConnectionTimeout = 5 * time.Second

	ldServerContextKind = "service"
	ldServerContextKey  = AppName
)

func LoadConfig() *Config {
	// Local dev convenience; deployed environments inject real env vars.
	_ = godotenv.Load()

	appPort := requireEnv("APP_PORT")
	appUrl := requireEnv("APP_URL")
	dbURL := requireEnv("DB_URL")

	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(decodeB64Env("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(decodeB64Env("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	twilioSID := requireEnv("TWILIO_ACCOUNT_SID")
	twilioToken := requireEnv("TWILIO_AUTH_TOKEN")
	sgAPIKey := requireEnv("SENDGRID_API_KEY")

	s3Region := requireEnv("S3_REGION")
	s3Bucket := requireEnv("S3_BUCKET")
	s3AccessKey := requireEnv("S3_ACCESS_KEY_ID")
	s3SecretKey := requireEnv("S3_SECRET_ACCESS_KEY")

	ldSDKKey := requireEnv("LD_SDK_KEY")
	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(ldServerContextKind), ldServerContextKey)

	useGMapsFlag := boolFlag(ldClient, ctx, "use_gmaps_geocoding")
	openaiPhotoFlag := boolFlag(ldClient, ctx, "openai_photo_verification")
	seedDbFlag := boolFlag(ldClient, ctx, "seed_db_with_test_data")
	corsHighSecurityFlag := boolFlag(ldClient, ctx, "cors_high_security")
	sgSandboxFlag := boolFlag(ldClient, ctx, "sendgrid_sandbox_mode")

	sgFromFlag := stringFlag(ldClient, ctx, "sendgrid_from_email")
	if sgFromFlag == "" {
		utils.Logger.Warn("sendgrid_from_email flag is empty, defaulting to no-reply@binbird.au")
		sgFromFlag = "no-reply@binbird.au"
	}
	twilioFromFlag := stringFlag(ldClient, ctx, "twilio_from_phone")
	if twilioFromFlag == "" {
		utils.Logger.Warn("twilio_from_phone flag is empty, defaulting to +10005550006")
		twilioFromFlag = "+10005550006"
	}

	var gmapsKey string
	if useGMapsFlag {
		gmapsKey = requireEnv("GMAPS_API_KEY")
	}
	var openaiKey string
	if openaiPhotoFlag {
		openaiKey = requireEnv("OPENAI_API_KEY")
	}

	return &Config{
		OrganizationName:               utils.OrganizationName,
		AppName:                        AppName,
		AppPort:                        appPort,
		AppUrl:                         appUrl,
		DBUrl:                          dbURL,
		GMapsAPIKey:                    gmapsKey,
		TwilioAccountSID:               twilioSID,
		TwilioAuthToken:                twilioToken,
		SendGridAPIKey:                 sgAPIKey,
		OpenAIAPIKey:                   openaiKey,
		S3Region:                       s3Region,
		S3Bucket:                       s3Bucket,
		S3AccessKeyID:                  s3AccessKey,
		S3SecretAccessKey:              s3SecretKey,
		RSAPrivateKey:                  privKey,
		RSAPublicKey:                   pubKey,
		AccessTokenExpiry:              12 * time.Hour,
		LDFlag_UseGMapsGeocoding:       useGMapsFlag,
		LDFlag_OpenAIPhotoVerification: openaiPhotoFlag,
		LDFlag_SeedDbWithTestData:      seedDbFlag,
		LDFlag_CORSHighSecurity:        corsHighSecurityFlag,
		LDFlag_SendgridSandboxMode:     sgSandboxFlag,
		LDFlag_SendgridFromEmail:       sgFromFlag,
		LDFlag_TwilioFromPhone:         twilioFromFlag,
	}
}

func (c *Config) Close() {}

func requireEnv(name string) string {
	val := os.Getenv(name)
	if val == "" {
		utils.Logger.Fatalf("%s env var is missing", name)
	}
	return val
}

func decodeB64Env(name string) []byte {
	raw, err := base64.StdEncoding.DecodeString(requireEnv(name))
	if err != nil {
		utils.Logger.WithError(err).Fatalf("%s is not valid base64", name)
	}
	return raw
}

func boolFlag(client *ld.LDClient, ctx ldcontext.Context, flag string) bool {
	val, err := client.BoolVariation(flag, ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", flag)
	}
	utils.Logger.Debugf("%s flag: %t", flag, val)
	return val
}

func stringFlag(client *ld.LDClient, ctx ldcontext.Context, flag string) string {
	val, err := client.StringVariation(flag, ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", flag)
	}
	utils.Logger.Debugf("%s flag: %s", flag, val)
	return val
}
