/*
Copyright © 2025 Mirko Lenz

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/mirkolenz/deepl-pro/deepl"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported language codes",
	Run: func(cmd *cobra.Command, args []string) {
		names := display.English.Languages()
		for _, code := range deepl.Languages() {
			fmt.Printf("%s\t%s\n", code, names.Name(language.MustParse(string(code))))
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
