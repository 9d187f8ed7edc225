package pterom_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/pterom"
	"github.com/adamwoolhether/pterom/client/apierr"
)

func ExampleNew() {
	panel := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/client/servers/1a7ce997/resources":
			fmt.Fprint(w, `{"object":"stats","attributes":{"current_state":"running","resources":{"memory_bytes":1073741824}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer panel.Close()

	p, err := pterom.New(pterom.Config{Host: panel.URL, ClientToken: "ptlc_example"})
	if err != nil {
		fmt.Println("config error:", err)
		return
	}

	usage, err := p.Client.ResourceUsage(context.Background(), "1a7ce997")
	if err != nil {
		fmt.Println("usage error:", err)
		return
	}
	fmt.Println(usage.CurrentState, usage.Resources.MemoryBytes)

	_, err = p.Client.ServerDetails(context.Background(), "missing")
	fmt.Println(errors.Is(err, apierr.ErrNotFound))
	fmt.Println(err)

	// Output:
	// running 1073741824
	// true
	// pterom client: server details: http error (404): the requested resource was not found
}
