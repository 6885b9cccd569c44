package gmailclient

import "fmt"

// SendReport sends the same report body to every recipient.
// Returns an error naming the first recipient that failed.
func (c *Client) SendReport(recipients []string, subject, body string) error {
	for _, to := range recipients {
		if err := c.SendEmail(to, subject, body); err != nil {
			return fmt.Errorf("failed to send report to %s: %w", to, err)
		}
	}
	return nil
}
