// Package client provides the request dispatcher and error classifier
// every panel endpoint is built on.
//
// # Building a Client
//
// Use [Build] with the panel host, an API token and functional options:
//
//	c, err := client.Build("https://panel.example.com", token,
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// The host is normalised to end in exactly one "/" and routes are
// always relative, so "https://panel.example.com" and
// "https://panel.example.com/" address the same URLs.
//
// # Making Requests
//
// [Client.Do] performs exactly one request. Any 2xx status is a
// success; anything else is an [*UnexpectedStatusError]; a request that
// never got a response returns the transport's error:
//
//	var out struct{ Attributes map[string]any }
//	_, err = c.Do(ctx, http.MethodGet, "api/client/account",
//		client.WithDestination(&out),
//	)
//
// # Classifying Failures
//
// [Classify] maps a failed dispatch onto a caller-supplied [Table] of
// status codes, [NoResponse] and [Wildcard]:
//
//	err = client.Classify(err, client.Table{
//		http.StatusNotFound: func(client.Key) error { return ErrMissing },
//		client.Wildcard:     func(s client.Key) error { return fmt.Errorf("status %d", s) },
//	})
//
// Errors that did not come from the transport pass through untouched.
// [github.com/adamwoolhether/pterom/client/apierr] builds the tables
// used by the endpoint packages.
//
// # Downloading Files
//
// The panel answers file and backup download calls with a signed URL.
// [Client.Download] streams that URL to disk:
//
//	err = c.Download(ctx, signedURL, "/tmp/world.tar.gz",
//		client.WithChecksum(sha1.New(), backup.Checksum),
//		client.WithProgress(),
//	)
package client
