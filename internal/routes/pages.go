package routes

import (
	"fmt"
	"html"
)

// resultPage renders the small confirmation/error page returned by the
// register form. Always status 200; the message carries the outcome.
func resultPage(msg string) string {
	return fmt.Sprintf(
		"<html><body><h3>%s</h3><a href='/login.html'>Go to Login</a></body></html>",
		html.EscapeString(msg))
}

// loginFailedPage is the 401 body for bad credentials.
func loginFailedPage() string {
	return "<html><body><h3 style='color:red;'>" + MsgLoginFailed + "</h3>" +
		"<a href='/login.html'>Try again</a></body></html>"
}

// welcomePage is the fallback body when the protected page file is
// unreadable after a successful login.
func welcomePage(username string) string {
	return fmt.Sprintf("<html><body><h2>"+MsgWelcomeFormat+"</h2></body></html>",
		html.EscapeString(username))
}

// failurePage is the generic 500 body for unexpected storage failures.
func failurePage() string {
	return "<html><body><h3 style='color:red;'>" + MsgStorageFailure + "</h3></body></html>"
}

// notFoundPage renders the themed 404 embedding the requester's network
// identity as observed by the server.
func notFoundPage(clientIP, clientPort string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Error 404</title></head>
<body>
  <h1 style="color:red;">%s</h1>
  <p>Client IP: %s</p>
  <p>Client Port: %s</p>
</body>
</html>`, MsgFileNotFound, html.EscapeString(clientIP), html.EscapeString(clientPort))
}
