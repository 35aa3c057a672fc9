package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const dialTimeout = 5 * time.Second

// dispatch sends tokens to addr over the requested transport and returns
// the daemon's reply, pretty-printed as JSON.
func dispatch(transport, addr string, tokens []string) (string, error) {
	switch transport {
	case "http":
		return dispatchHTTP(addr, tokens)
	default:
		return dispatchSocket(addr, tokens)
	}
}

func dispatchSocket(addr string, tokens []string) (string, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return "", fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, strings.Join(tokens, " ")); err != nil {
		return "", fmt.Errorf("writing request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading reply: %w", err)
	}
	return prettyJSON(line)
}

func dispatchHTTP(addr string, tokens []string) (string, error) {
	u := url.URL{
		Scheme:   "http",
		Host:     addr,
		Path:     "/command",
		RawQuery: "cmd=" + url.QueryEscape(strings.Join(tokens, " ")),
	}

	client := http.Client{Timeout: dialTimeout}
	resp, err := client.Get(u.String())
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", u.String(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading reply: %w", err)
	}
	return prettyJSON(string(body))
}

func prettyJSON(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty reply")
	}
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw, nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return raw, nil
	}
	return string(out), nil
}
