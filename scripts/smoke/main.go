// End-to-end exerciser against a running instance. Usage:
//
//	go run ./scripts/smoke
//
// Walks the whole flow: create session -> generate from text -> list history
// -> select -> delete -> clear. Needs a valid GOOGLE_GEMINI_API_KEY on the
// server side.
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

var baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
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

	client := &http.Client{} // No timeout: generation can take a while
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

type envelope struct {
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func step(name string, ok bool, detail string) {
	if ok {
		color.Green("PASS  %s", name)
	} else {
		color.Red("FAIL  %s: %s", name, detail)
		os.Exit(1)
	}
}

func main() {
	if url := os.Getenv("SMOKE_BASE_URL"); url != "" {
		baseURL = url
	}
	color.Cyan("IntelliNote smoke run against %s", baseURL)

	// 1. Create session
	resp, body, err := sendRequest("POST", "/study/v1/session", nil)
	if err != nil {
		step("create session", false, err.Error())
	}
	var env envelope
	json.Unmarshal(body, &env)
	sid, _ := env.Data["id"].(string)
	step("create session", resp.StatusCode == 200 && sid != "", string(body))

	// 2. Generate from text
	resp, body, err = sendRequest("POST", "/study/v1/session/"+sid+"/generate", map[string]string{
		"text": "The mitochondria is the powerhouse of the cell. It produces ATP through cellular respiration.",
	})
	if err != nil {
		step("generate", false, err.Error())
	}
	json.Unmarshal(body, &env)
	entryID, _ := env.Data["id"].(string)
	step("generate", resp.StatusCode == 200 && entryID != "", string(body))
	prettyPrint(env.Data)

	// 3. List history
	resp, body, _ = sendRequest("GET", "/study/v1/history", nil)
	step("list history", resp.StatusCode == 200, string(body))

	// 4. Select the entry
	resp, body, _ = sendRequest("POST", "/study/v1/session/"+sid+"/history/"+entryID+"/select", nil)
	step("select entry", resp.StatusCode == 200, string(body))

	// 5. Delete the entry (display should reset)
	resp, body, _ = sendRequest("DELETE", "/study/v1/session/"+sid+"/history/"+entryID, nil)
	step("delete entry", resp.StatusCode == 200, string(body))

	resp, body, _ = sendRequest("GET", "/study/v1/session/"+sid, nil)
	json.Unmarshal(body, &env)
	status, _ := env.Data["status"].(string)
	step("display reset after delete", resp.StatusCode == 200 && status == "IDLE", string(body))

	// 6. Clear
	resp, body, _ = sendRequest("DELETE", "/study/v1/session/"+sid+"/history", nil)
	step("clear history", resp.StatusCode == 200, string(body))

	color.Green("All smoke steps passed")
}
