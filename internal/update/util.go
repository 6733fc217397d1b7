package update

// osascriptArgs builds an osascript invocation that receives the body and
// title as argv, so neither is ever parsed as AppleScript source.
func osascriptArgs(n Notification) []string {
	return []string{
		"-e", "on run argv",
		"-e", "display notification (item 1 of argv) with title (item 2 of argv)",
		"-e", "end run",
		n.Body, n.Title,
	}
}
