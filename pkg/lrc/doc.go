// Package lrc 在 LRC 歌词文本与 lyric.Document 之间双向转换。
//
// 解析方向：Parse 识别文件开头的标签行，拆分一行多个时间戳，
// 稳定排序后合并时间戳相同的相邻行。
//
// 展开方向：Expand 重新拆开合并过的行，可选地把文本相同的行合并为
// 一行多时间戳，统一以 CRLF 结尾输出。Shrink 是用于保存的变体。
//
// 包内所有函数都是纯函数，不做 I/O，可以并发调用。
package lrc
