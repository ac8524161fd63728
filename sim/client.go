package sim

import "fmt"

// Client models a single user requesting a proxy. The malicious flag is
// sampled uniformly at random once at creation and never changes; a
// malicious client reports its assigned proxy to the censor.
type Client struct {
	Name      string
	Malicious bool
}

// String returns a human-readable representation of a Client.
func (c *Client) String() string {
	return fmt.Sprintf("Client: (Name: %s, Malicious: %t)", c.Name, c.Malicious)
}
