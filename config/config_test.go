package config

import "testing"

func TestValidateDatabaseConfigMissing(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_NAME", "")

	if err := ValidateDatabaseConfig(); err == nil {
		t.Fatal("expected validation error for missing database environment variables")
	}
}

func TestValidateDatabaseConfigSuccess(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASS", "pass")
	t.Setenv("DB_NAME", "dbname")

	if err := ValidateDatabaseConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateJWTConfigMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if err := ValidateJWTConfig(); err == nil {
		t.Fatal("expected validation error for missing JWT secret")
	}
}

func TestValidateJWTConfigInvalidTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")

	if err := ValidateJWTConfig(); err == nil {
		t.Fatal("expected validation error for invalid JWT access TTL")
	}
}

func TestValidateStorageConfigMissing(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_S3_BUCKET", "")

	if err := ValidateStorageConfig(); err == nil {
		t.Fatal("expected validation error for missing storage environment variables")
	}
}

func TestValidateStorageConfigInvalidTTL(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-southeast-1")
	t.Setenv("AWS_S3_BUCKET", "letters")
	t.Setenv("S3_PRESIGN_TTL", "soon")

	if err := ValidateStorageConfig(); err == nil {
		t.Fatal("expected validation error for invalid presign TTL")
	}
}

func TestValidateStorageConfigSuccess(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-southeast-1")
	t.Setenv("AWS_S3_BUCKET", "letters")
	t.Setenv("S3_PRESIGN_TTL", "10m")

	if err := ValidateStorageConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
