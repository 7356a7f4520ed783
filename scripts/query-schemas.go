package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Lookups issued against every stored document of the matching kind
var probes = map[string][]string{
	"timeseries": {"cpuuser", "membw", "gpu_usage"},
	"summary":    {"cpuperf/cpiref", "gpu/gpu0/gpuactive", "rapl"},
}

const defaultURL = "http://localhost:8082/api/schemas/"

func fetch(client *http.Client, url, token string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", res.Status, string(body))
	}
	return body, nil
}

func main() {
	url := os.Getenv("SUPREMM_SCHEMA_URL")
	if url == "" {
		url = defaultURL
	}
	token := os.Getenv("SUPREMM_SCHEMA_TOKEN")

	client := &http.Client{Timeout: 10 * time.Second}

	body, err := fetch(client, url, token)
	if err != nil {
		log.Fatal(err)
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		log.Fatal(err)
	}

	for _, id := range ids {
		kind := "timeseries"
		if strings.HasPrefix(id, "summary-") {
			kind = "summary"
		}

		for _, p := range probes[kind] {
			body, err := fetch(client, url+id+"/lookup/"+p, token)
			if err != nil {
				log.Printf("%s %s: %s", id, p, err.Error())
				continue
			}
			log.Printf("%s %s: %s", id, p, string(body))
		}
	}
}
