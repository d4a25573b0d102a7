/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/focusengine/dietitian-focus/pkg/analyzer"
)

func promptCmd() *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "Print the prompt that would be sent for a food",
		Flags: []cli.Flag{
			foodFlag(),
			styleFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			svc := analyzer.NewService(nil)
			_, _, prompt, err := svc.Prompt(cmd.String("food"), cmd.String("style"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, prompt)
			return err
		},
	}
}

func stylesCmd() *cli.Command {
	return &cli.Command{
		Name:  "styles",
		Usage: "List the supported prompt styles",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, s := range analyzer.Styles() {
				if _, err := fmt.Fprintln(cmd.Root().Writer, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
