// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import "github.com/fatih/color"

// Helper
// 腳本輸出上色。fatih/color 在非 TTY 或設定 NO_COLOR 時自動關閉顏色。

var (
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	blue   = color.New(color.FgBlue, color.Bold)
)

func PrintRed(msg string)    { red.Println(msg) }
func PrintGreen(msg string)  { green.Println(msg) }
func PrintYellow(msg string) { yellow.Println(msg) }
func PrintBlue(msg string)   { blue.Println(msg) }
