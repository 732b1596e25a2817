// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/agentdesk/internal/view"
)

// notifyPrinter prints notifications for one-shot commands and ignores the
// rest of the projector calls.
type notifyPrinter struct {
	view.Nop
	out io.Writer
}

// OnNotify implements view.Projector.
func (p notifyPrinter) OnNotify(message string, severity view.Severity) {
	fmt.Fprintln(p.out, RenderNotification(message, severity))
}
