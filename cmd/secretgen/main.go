// Command secretgen prints a fresh APP_SECRET value.
//
// Rotating APP_SECRET makes every stored TOTP secret, recovery code hash
// and one-time code unreadable; users must set up two-factor again.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
)

func main() {
	raw := flag.Bool("raw", false, "print only the value, without the APP_SECRET= prefix")
	flag.Parse()

	key, err := secrets.GenerateMasterKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "secretgen: %v\n", err)
		os.Exit(1)
	}
	if *raw {
		fmt.Println(key)
		return
	}
	fmt.Printf("APP_SECRET=%s\n", key)
}
