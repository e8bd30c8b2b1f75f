/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ir

import (
    `fmt`
    `html`
    `strings`

    `github.com/oleiade/lane`
)

func dotrow(ss string) string {
    return fmt.Sprintf("<tr><td align=\"left\">%s</td></tr>\n", strings.ReplaceAll(html.EscapeString(ss), " ", "&nbsp;"))
}

func dotblock(fn *Function, cfg *ControlFlowGraph, bb Block, annotate func(Block) []string) string {
    var pred []string
    for _, p := range cfg.Predecessors(bb) {
        pred = append(pred, p.String())
    }

    /* block header and metadata */
    buf := []string {
        "<table border=\"1\" cellborder=\"0\" cellspacing=\"0\">\n",
        dotrow(bb.String()),
        "<hr/>\n",
        dotrow(fmt.Sprintf("# pred = {%s}", strings.Join(pred, ", "))),
    }

    /* extra annotations supplied by the caller */
    if annotate != nil {
        for _, ss := range annotate(bb) {
            buf = append(buf, dotrow("# " + ss))
        }
    }

    /* instructions */
    if ins := fn.Layout.BlockInsts(bb); len(ins) != 0 {
        buf = append(buf, "<hr/>\n")
        for _, v := range ins {
            buf = append(buf, dotrow(fmt.Sprintf("%s: %s", v, fn.DFG.DisplayInst(v))))
        }
    }

    /* join them together */
    buf = append(buf, "</table>")
    return strings.Join(buf, "")
}

// Dot renders the reachable part of the CFG as a Graphviz digraph. The
// optional annotate callback adds metadata lines to every block.
func Dot(fn *Function, cfg *ControlFlowGraph, annotate func(Block) []string) string {
    q := lane.NewQueue()
    n := make(map[Block]bool)
    e := make(map[[2]Block]bool)
    buf := []string {
        "digraph CFG {",
        `    graph [ fontname = "Fira Code" ]`,
        `    node [ fontname = "Fira Code" fontsize = "16" shape = "plaintext" ]`,
        `    edge [ fontname = "Fira Code" ]`,
        `    START [ shape = "circle" ]`,
        fmt.Sprintf(`    START -> %s`, cfg.Entry),
    }

    /* BFS from the entry block */
    for q.Enqueue(cfg.Entry); !q.Empty(); {
        p := q.Dequeue().(Block)
        if n[p] {
            continue
        }

        /* emit the node */
        n[p] = true
        buf = append(buf, fmt.Sprintf(`    %s [ label = < %s > ]`, p, dotblock(fn, cfg, p, annotate)))

        /* emit all the edges */
        for _, ln := range cfg.Successors(p) {
            if !n[ln] {
                q.Enqueue(ln)
            }
            if edge := [2]Block { p, ln }; !e[edge] {
                e[edge] = true
                buf = append(buf, fmt.Sprintf(`    %s -> %s`, p, ln))
            }
        }
    }

    /* join them together */
    buf = append(buf, "}")
    return strings.Join(buf, "\n")
}
