// Command example demonstrates driving a Connection directly: connect,
// run a query, read a result set, and close.
package main

import (
	"fmt"
	"log"

	mysql "github.com/zhglin/mysqlcore"
)

func main() {
	cfg, err := mysql.NewConfig("127.0.0.1", 3306, "example", "root", "", map[string]string{
		"createDB": "true",
	})
	if err != nil {
		log.Fatal(err)
	}

	conn, err := mysql.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("connected to", conn.ServerVersion())

	res, err := conn.ExecuteQuery("SELECT id, name FROM widgets")
	if err != nil {
		log.Fatal(err)
	}
	if res.IsResultSet {
		for _, row := range res.Rows {
			fmt.Println(row)
		}
	}
}
