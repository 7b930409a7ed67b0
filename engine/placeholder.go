package engine

import (
	"fmt"

	"golang.org/x/net/html"
)

const placeholderTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%[1]s - Placeholder Preview</title>
<meta name="description" content="Placeholder preview for %[1]s">
</head>
<body>
<header>
<h1>Welcome to %[1]s</h1>
<nav>
<a href="/page1">Page 1</a>
<a href="/page2">Page 2</a>
<a href="/contact">Contact</a>
</nav>
</header>
<main>
<section>
<h2>About Us</h2>
<p>The content of %[1]s could not be retrieved.</p>
<img src="placeholder.jpg" alt="Placeholder image">
</section>
<section>
<h2>Our Services</h2>
<h3>Service 1</h3>
<h3>Service 2</h3>
</section>
<form action="/subscribe" method="post">
<input type="email" name="email" placeholder="Email">
<button type="submit">Subscribe</button>
</form>
</main>
</body>
</html>
`

// Placeholder returns a deterministic HTML document derived from the
// hostname of targetURL: a title, headings, one form, one image and three
// links.
func Placeholder(targetURL string) string {
	return fmt.Sprintf(placeholderTemplate, html.EscapeString(extractDomain(targetURL)))
}
