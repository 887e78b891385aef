package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/system76/power-management-service/internal/config"
)

// GetInternalBaseURL is a helper method to allow calls to any resources
func GetInternalBaseURL(internalEndpoint string) (string, error) {
	if internalEndpoint == "" {
		return "", fmt.Errorf("internalEndpoint cannot be empty")
	}

	endpoint := fmt.Sprintf(
		"http://localhost:%d%s",
		config.GetConfig().Rest.Port,
		internalEndpoint,
	)

	return endpoint, nil
}

// ResponseBody performs a request against the daemon's own API and returns
// the raw response body.
func ResponseBody(_ *gin.Context, method, endpoint, query string, body []byte) ([]byte, error) {
	endpointURL, err := GetInternalBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	if query != "" {
		endpointURL = endpointURL + "?" + query
	}

	req, err := http.NewRequest(method, endpointURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("unable to build %s request to %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	client := http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to make %s request to %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}

	return respBody, nil
}
