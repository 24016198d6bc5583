//go:build basic || database || integration

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedAdlensPath holds the path to a shared adlens binary built once for all tests.
	sharedAdlensPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getAdlensBinary returns the path to the adlens binary, building it once if needed.
func getAdlensBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "adlens-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		adlensPath := filepath.Join(tempDir, "adlens")
		buildCmd := exec.Command("go", "build", "-o", adlensPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build adlens: %v", err))
		}

		sharedAdlensPath = adlensPath
	})

	return sharedAdlensPath
}

// runAdlensCommand runs the shared adlens binary with extra environment
// entries appended to the inherited environment. It returns an error when
// the command exits non-zero, logging the combined output for diagnosis.
func runAdlensCommand(t *testing.T, extraEnv []string, args ...string) error {
	t.Helper()

	adlensPath := getAdlensBinary()
	cmd := exec.Command(adlensPath, args...)
	cmd.Dir = "../" // Run from project root
	cmd.Env = append(os.Environ(), extraEnv...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// workspaceFixture is a small but complete campaign export: two completed
// flights that delivered on budget, three conversion paths, one holdout
// experiment and a four-segment library with one untargeted segment.
const workspaceFixture = `{
  "name": "integration-fixture",
  "exportedAt": "2025-07-01T00:00:00Z",
  "campaigns": [
    {
      "id": "cmp-summer",
      "name": "Summer Launch",
      "startDate": "2025-06-01T00:00:00Z",
      "endDate": "2025-06-30T00:00:00Z",
      "totalBudget": 35000,
      "status": "completed",
      "flights": [
        {
          "id": "fl-search-jun",
          "name": "Search June",
          "startDate": "2025-06-01T00:00:00Z",
          "endDate": "2025-06-30T00:00:00Z",
          "budget": 20000,
          "status": "completed",
          "performance": {
            "impressions": 2000000,
            "clicks": 40000,
            "conversions": 800,
            "ctr": 2.0,
            "cvr": 2.0,
            "roas": 4.0
          },
          "delivery": {
            "actualSpend": 20000,
            "actualImpressions": 2000000,
            "pacing": 1.0,
            "status": "delivered"
          },
          "forecast": {
            "impressions": 2000000,
            "reach": 900000,
            "frequency": 2.2
          },
          "goals": {
            "conversions": 750
          },
          "placements": [
            {
              "id": "pl-search-brand",
              "name": "Brand Keywords",
              "segmentIds": ["seg-intent"],
              "performance": {
                "impressions": 800000,
                "clicks": 24000,
                "conversions": 500,
                "spend": 9000
              }
            },
            {
              "id": "pl-search-generic",
              "name": "Generic Keywords",
              "segmentIds": ["seg-intent", "seg-fashion"],
              "performance": {
                "impressions": 1200000,
                "clicks": 16000,
                "conversions": 300,
                "spend": 11000
              }
            }
          ]
        },
        {
          "id": "fl-social-jun",
          "name": "Social June",
          "startDate": "2025-06-01T00:00:00Z",
          "endDate": "2025-06-30T00:00:00Z",
          "budget": 15000,
          "status": "completed",
          "performance": {
            "impressions": 3000000,
            "clicks": 30000,
            "conversions": 450,
            "ctr": 1.0,
            "cvr": 1.5,
            "roas": 2.8
          },
          "delivery": {
            "actualSpend": 15000,
            "actualImpressions": 3000000,
            "pacing": 1.0,
            "status": "delivered"
          },
          "forecast": {
            "impressions": 3000000,
            "reach": 1200000,
            "frequency": 2.5
          },
          "placements": [
            {
              "id": "pl-social-feed",
              "name": "Feed Ads",
              "segmentIds": ["seg-fashion", "seg-genz"],
              "performance": {
                "impressions": 3000000,
                "clicks": 30000,
                "conversions": 450,
                "spend": 15000
              }
            }
          ]
        }
      ]
    }
  ],
  "paths": [
    {
      "id": "path-1",
      "touchpoints": [
        {"channel": "google_search", "channelType": "search", "timestamp": "2025-06-05T10:00:00Z", "cost": 2.5},
        {"channel": "instagram", "channelType": "social", "timestamp": "2025-06-07T18:30:00Z", "cost": 1.2},
        {"channel": "email_blast", "channelType": "email", "timestamp": "2025-06-09T08:00:00Z", "cost": 0.1}
      ],
      "conversionValue": 180,
      "timeToConversionHours": 94
    },
    {
      "id": "path-2",
      "touchpoints": [
        {"channel": "instagram", "channelType": "social", "timestamp": "2025-06-12T20:15:00Z", "cost": 1.2}
      ],
      "conversionValue": 90,
      "timeToConversionHours": 6
    },
    {
      "id": "path-3",
      "touchpoints": [
        {"channel": "google_search", "channelType": "search", "timestamp": "2025-06-15T09:45:00Z", "cost": 2.5},
        {"channel": "email_blast", "channelType": "email", "timestamp": "2025-06-16T08:00:00Z", "cost": 0.1}
      ],
      "conversionValue": 120,
      "timeToConversionHours": 30
    }
  ],
  "experiments": [
    {
      "id": "exp-social-holdout",
      "channel": "instagram",
      "channelType": "social",
      "periodStart": "2025-06-01T00:00:00Z",
      "periodEnd": "2025-06-30T00:00:00Z",
      "controlGroup": {"spend": 5000, "conversions": 100, "revenue": 9000},
      "testGroup": {"spend": 5000, "conversions": 150, "revenue": 13500}
    }
  ],
  "segments": [
    {"id": "seg-intent", "name": "High Intent Shoppers", "category": "behavioral", "reach": 400000, "cpmUplift": 1.5},
    {"id": "seg-fashion", "name": "Fashion Enthusiasts", "category": "interest", "reach": 650000, "cpmUplift": 2.0},
    {"id": "seg-genz", "name": "Gen Z Adults", "category": "demographics", "reach": 800000, "cpmUplift": 1.2, "vendor": "acme-dmp"},
    {"id": "seg-lux", "name": "Luxury Buyers", "category": "interest", "reach": 500000, "cpmUplift": 2.5, "vendor": "acme-dmp"}
  ]
}
`

// writeWorkspaceFixture writes the fixture export into a fresh temp directory
// and returns the directory path, suitable as a workspace-path argument.
func writeWorkspaceFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.json")
	if err := os.WriteFile(path, []byte(workspaceFixture), 0o644); err != nil {
		t.Fatalf("failed to write workspace fixture: %v", err)
	}
	return dir
}
