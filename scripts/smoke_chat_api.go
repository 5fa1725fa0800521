package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL  = "http://localhost:3000/api"
	clientId = "smoke-test"
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Id", clientId)

	client := &http.Client{} // No timeout; think-longer calls can run long
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(name, method, url string, body interface{}) []byte {
	color.Cyan("\n=== %s ===", name)
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		color.Red("FAIL: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Yellow("HTTP %d", resp.StatusCode)
	} else {
		color.Green("HTTP %d", resp.StatusCode)
	}
	prettyPrint(respBody)
	return respBody
}

func main() {
	color.Magenta("Chat API smoke test against %s", baseURL)

	step("Create session", "POST", "/chat/v1", nil)
	step("List sessions", "GET", "/chat/v1/sessions", nil)

	sendBody := map[string]interface{}{
		"message": "Hi! What can you do?",
	}
	reply := step("Send chat", "POST", "/chat/v1/send", sendBody)

	var envelope struct {
		Data struct {
			ChatSessionId string `json:"chat_session_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(reply, &envelope); err == nil && envelope.Data.ChatSessionId != "" {
		step("History", "GET", "/chat/v1/history/"+envelope.Data.ChatSessionId, nil)
	}

	step("Think-longer usage", "GET", "/usage/v1/think-longer", nil)
	step("Suggestions", "GET", "/assist/v1/suggestions", nil)
	step("Enable privacy mode", "PUT", "/chat/v1/privacy", map[string]interface{}{"enabled": true})
	step("Send private chat", "POST", "/chat/v1/send", map[string]interface{}{"message": "This should not persist"})
	step("Disable privacy mode", "PUT", "/chat/v1/privacy", map[string]interface{}{"enabled": false})
	step("Clear all sessions", "DELETE", "/chat/v1", nil)

	color.Green("\nDone.")
}
