// cmd/main.go
package main

import (
	"github.com/555cider/admin-server/app"
)

func main() {
	app.Run()
}
