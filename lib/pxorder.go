package lib

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"payexsync/config"
	"payexsync/dto/model"
	"payexsync/helper"
)

const (
	pxOrderProduction = "https://external.payex.com/pxorder/pxorder.asmx"
	pxOrderTest       = "https://test-external.payex.com/pxorder/pxorder.asmx"
)

type param struct {
	name  string
	value string
}

// PxOrderClient calls the PayEx PxOrder web service over its HTTP POST
// binding. Every call is signed with an MD5 hash of the parameter values
// followed by the merchant's encryption key.
type PxOrderClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewPxOrderClient returns a client with the timeout from PAYEX_TIMEOUT.
func NewPxOrderClient() *PxOrderClient {
	return &PxOrderClient{
		httpClient: &http.Client{Timeout: config.ConfigDuration("PAYEX_TIMEOUT", 30*time.Second)},
		baseURL:    config.Config("PAYEX_PXORDER_URL", ""),
	}
}

// NewPxOrderClientWithURL always posts to baseURL regardless of test mode.
func NewPxOrderClientWithURL(baseURL string, httpClient *http.Client) *PxOrderClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &PxOrderClient{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *PxOrderClient) endpoint(testMode bool) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	if testMode {
		return pxOrderTest
	}
	return pxOrderProduction
}

// Hash returns the uppercase MD5 of the concatenated values and key.
func Hash(values []string, encryptionKey string) string {
	sum := md5.Sum([]byte(strings.Join(values, "") + encryptionKey))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// asmxString is the envelope of the HTTP POST binding: the PxOrder XML
// document arrives escaped inside a single string element.
type asmxString struct {
	Value string `xml:",chardata"`
}

func decodeResult(body []byte) (*model.GatewayOperationResult, error) {
	var envelope asmxString
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	inner := strings.TrimSpace(envelope.Value)
	if inner == "" {
		return nil, fmt.Errorf("empty PxOrder response")
	}

	var result model.GatewayOperationResult
	if err := xml.Unmarshal([]byte(inner), &result); err != nil {
		return nil, fmt.Errorf("failed to decode PxOrder response: %w", err)
	}
	return &result, nil
}

// call posts method with params. The hash is appended by call. Parameters
// named in redact are masked in the API log.
func (c *PxOrderClient) call(ctx context.Context, settings *model.GatewaySettings, method string, params []param, redact ...string) (*model.GatewayOperationResult, error) {
	form := url.Values{}
	values := make([]string, 0, len(params))
	logged := make(map[string]interface{}, len(params))
	for _, p := range params {
		form.Set(p.name, p.value)
		values = append(values, p.value)
		logged[p.name] = p.value
	}
	for _, name := range redact {
		if _, ok := logged[name]; ok {
			logged[name] = "***"
		}
	}
	form.Set("hash", Hash(values, settings.EncryptedKey))

	endpoint := c.endpoint(settings.TestMode) + "/" + method
	apiLog := helper.LoggerFor(settings.ID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiLog.LogAPICall(endpoint, method, time.Since(start), 0, logged, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiLog.LogAPICall(endpoint, method, time.Since(start), resp.StatusCode, logged, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiLog.LogAPICall(endpoint, method, time.Since(start), resp.StatusCode, logged, map[string]interface{}{"body": string(body)})
		return nil, fmt.Errorf("request failed with status: %s", resp.Status)
	}

	result, err := decodeResult(body)
	if err != nil {
		apiLog.LogAPICall(endpoint, method, time.Since(start), resp.StatusCode, logged, map[string]interface{}{"body": string(body)})
		return nil, err
	}

	apiLog.LogAPICall(endpoint, method, time.Since(start), resp.StatusCode, logged, map[string]interface{}{
		"code":               result.Code,
		"description":        result.Description,
		"error_code":         result.ErrorCode,
		"transaction_status": result.TransactionStatus,
		"transaction_number": result.TransactionNumber,
	})
	return result, nil
}
