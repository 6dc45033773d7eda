package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/moffa90/go-xboxhdd/drive"
	"github.com/moffa90/go-xboxhdd/eeprom"
	"github.com/moffa90/go-xboxhdd/firmware"
)

var testKey = [eeprom.DriveKeySize]byte{
	0x10, 0x32, 0x54, 0x76, 0x98, 0xBA, 0xDC, 0xFE,
	0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
}

const (
	testModel  = "ST310014ACE"
	testSerial = "5JV0ABC1"
)

func writeSealedImage(t *testing.T) string {
	t.Helper()

	img, err := eeprom.Seal(firmware.RetailMiddle, eeprom.Plaintext{
		DriveKey: testKey,
		Region:   eeprom.RegionNorthAmerica,
	}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "eeprom.bin")
	require.NoError(t, os.WriteFile(path, img.Bytes(), 0o600))
	return path
}

func expectedPassword(width int) []byte {
	mac := hmac.New(sha1.New, testKey[:])
	mac.Write([]byte(testModel + testSerial))
	out := make([]byte, width)
	copy(out, mac.Sum(nil))
	return out
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunHexReport(t *testing.T) {
	path := writeSealedImage(t)

	out, _, err := execute(t, "-f", path, "-m", testModel, "-s", testSerial)
	require.NoError(t, err)

	assert.Contains(t, out, drive.Hex(testKey[:]))
	assert.Contains(t, out, "North America")
	assert.Contains(t, out, "1.1 - 1.4 (middle retail)")
	assert.Contains(t, out, "HDD Password (20 bytes)")
	assert.Contains(t, out, drive.Hex(expectedPassword(20)))
}

func TestRunBinToStdout(t *testing.T) {
	path := writeSealedImage(t)

	out, _, err := execute(t, "-f", path, "-m", testModel, "-s", testSerial, "-o", "bin", "-w", "32")
	require.NoError(t, err)
	assert.Equal(t, expectedPassword(32), []byte(out))
}

func TestRunBinToFile(t *testing.T) {
	path := writeSealedImage(t)
	dst := filepath.Join(t.TempDir(), "pw.bin")

	out, _, err := execute(t, "-f", path, "-m", testModel, "-s", testSerial, "-o", "bin", "--out", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, expectedPassword(20), got)
}

func TestRunVerboseLogsTrials(t *testing.T) {
	path := writeSealedImage(t)

	_, logs, err := execute(t, "-f", path, "-m", testModel, "-s", testSerial, "--dump")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(logs, "variant tried"))
	assert.Contains(t, logs, "eeprom layout")
	assert.Contains(t, logs, "eeprom decoded")
}

func TestRunErrors(t *testing.T) {
	good := writeSealedImage(t)

	short := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(short, make([]byte, 100), 0o600))

	zero := filepath.Join(t.TempDir(), "zero.bin")
	require.NoError(t, os.WriteFile(zero, make([]byte, eeprom.ImageSize), 0o600))

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "missing file flag",
			args:   []string{"-m", testModel, "-s", testSerial},
			errMsg: "EEPROM file is required",
		},
		{
			name:   "missing serial",
			args:   []string{"-f", good, "-m", testModel},
			errMsg: "drive serial is required",
		},
		{
			name:   "bad output",
			args:   []string{"-f", good, "-m", testModel, "-s", testSerial, "-o", "json"},
			errMsg: "invalid output format",
		},
		{
			name:   "bad width",
			args:   []string{"-f", good, "-m", testModel, "-s", testSerial, "-w", "16"},
			errMsg: "unsupported password width",
		},
		{
			name:   "short image",
			args:   []string{"-f", short, "-m", testModel, "-s", testSerial},
			errMsg: "got 100 bytes",
		},
		{
			name:   "undecodable image",
			args:   []string{"-f", zero, "-m", testModel, "-s", testSerial},
			errMsg: "unsupported kernel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRunWithConfigFile(t *testing.T) {
	path := writeSealedImage(t)
	cfg := filepath.Join(t.TempDir(), "drive.yaml")

	content := "file: " + path + "\n" +
		"model: " + testModel + "\n" +
		"serial: WRONG\n" +
		"output: bin\n" +
		"width: 32\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))

	// the serial flag overrides the file
	out, _, err := execute(t, "--config", cfg, "-s", testSerial)
	require.NoError(t, err)
	assert.Equal(t, expectedPassword(32), []byte(out))
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1, 2"), 0o600))
	_, err = loadConfig(bad)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestCodecLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := newCodecLogger(zap.New(core))

	img, err := eeprom.Seal(firmware.RetailLast, eeprom.Plaintext{DriveKey: testKey}, nil)
	require.NoError(t, err)

	_, err = eeprom.New(img, eeprom.WithLogger(logger)).Decode()
	require.NoError(t, err)

	assert.Equal(t, 4, logs.FilterMessage("variant tried").Len())

	decoded := logs.FilterMessage("eeprom decoded").All()
	require.Len(t, decoded, 1)
	assert.Equal(t, zapcore.InfoLevel, decoded[0].Level)
	assert.Equal(t, "1.6 (last retail)", decoded[0].ContextMap()["variant"])
}
