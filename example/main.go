package main

import (
	"fmt"
	"strings"

	"github.com/fernandezvara/passentropy"
)

func main() {
	fmt.Println("Password Entropy Examples")
	fmt.Println("=========================")
	fmt.Println()

	// Example 1: Basic usage with the bundled word lists
	fmt.Println("1. Basic Usage (Bundled Word Lists)")
	fmt.Println("-----------------------------------")
	p1 := passentropy.NewPolicy(8, 64, true, true, true, true, 36)

	pass, res, err := p1.ValidateVerbose("password")
	fmt.Printf("Password: `password`\n")
	fmt.Printf("Result: Pass=%v, Entropy=%.2f bits, Score=%d\n", pass, res.Entropy, res.Score())
	if err != nil {
		fmt.Printf("Details: %s\n", err.Error())
	}
	fmt.Println()

	// Example 2: Custom word list
	fmt.Println("2. Custom Word List Usage")
	fmt.Println("-------------------------")
	company := passentropy.NewWordList("company", []string{
		"acme", "roadrunner", "coyote", "anvil", "rocket",
	})
	est, err := passentropy.NewEstimator(passentropy.WithWordLists(company))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	p2 := passentropy.NewPolicyWithEstimator(est, 8, 64, true, true, true, true, 36)

	pass, res, err = p2.ValidateVerbose("R0adrunner2024!")
	fmt.Printf("Password: `R0adrunner2024!`\n")
	fmt.Printf("Result: Pass=%v, Entropy=%.2f bits\n", pass, res.Entropy)
	if err != nil {
		fmt.Printf("Details: %s\n", err.Error())
	}
	fmt.Println()

	// Example 3: Context words the attacker knows about the user
	fmt.Println("3. Context Words")
	fmt.Println("----------------")
	res, err = est.Estimate("Wile.E.1949", "wile", "coyote", "1949")
	if err == nil {
		fmt.Printf("Password: `Wile.E.1949` with context [wile coyote 1949]: %.2f bits\n", res.Entropy)
	}
	fmt.Println()

	// Example 4: How each password is explained
	fmt.Println("4. Match Breakdown")
	fmt.Println("==================")
	fmt.Println()

	fmt.Println("| Password                     | Entropy | Strength | Matches")
	fmt.Println("|------------------------------|---------|----------|--------")

	for _, pw := range []string{
		"password",
		"p@ssw0rd",
		"qwerty",
		"aaaaaa",
		"Xk9$mP2!vLq",
		"12345678",
		"abcdefg",
		"P@ssword123",
		"admin2023!",
		"aB3!aB3!",
		"correcthorsebatterystaple",
		"Tr0ub4dor&3",
		"neverforget13/3/1997",
		"11111111",
	} {
		res, err := passentropy.Estimate(pw)
		if err != nil {
			fmt.Printf("| %-28s | error: %v\n", "`"+pw+"`", err)
			continue
		}
		fmt.Printf("| %-28s | %7.2f | %-8s | %s\n",
			"`"+pw+"`", res.Entropy, res.Strength(), describe(res))
	}
}

// describe lists the matches of a result as type(token).
func describe(res passentropy.Result) string {
	parts := make([]string, 0, len(res.Matches))
	for _, m := range res.Matches {
		parts = append(parts, fmt.Sprintf("%s(%s)", m.Type, m.Token))
	}
	return strings.Join(parts, " + ")
}
