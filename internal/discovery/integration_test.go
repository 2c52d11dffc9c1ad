//go:build integration

package discovery

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RealAPI(t *testing.T) {
	apiKey := os.Getenv("DISCOVERY_API_KEY")
	projectID := os.Getenv("GOOGLE_PROJECT_ID")
	engineID := os.Getenv("DISCOVERY_ENGINE_ID")

	if apiKey == "" || projectID == "" || engineID == "" {
		t.Skip("DISCOVERY_API_KEY, GOOGLE_PROJECT_ID and DISCOVERY_ENGINE_ID required for integration tests")
	}

	client := NewClient("https://discoveryengine.googleapis.com", projectID, "global", apiKey, logrus.New())

	result, err := client.Search(context.Background(), SearchParams{
		EngineID: engineID,
		Query:    "test",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.RequestURL)
	require.NotEmpty(t, result.RawResponse)
}
