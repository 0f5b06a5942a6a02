package llm

// Extraction prompts for 政治資金収支報告書 (political funds balance report)
// pages. The page marker 「（そのXX）」 printed in the top right corner of
// every page identifies the schedule type and drives downstream mapping.

const singlePagePrompt = `
あなたは政治資金収支報告書のデータ抽出エキスパートです。

この画像は政治資金収支報告書の1ページです。
画像右上に記載されている「（そのXX）」を確認し、以下の形式でJSONを出力してください。

## 重要な指示
1. 画像右上の「（そのXX）」を正確に識別してください
2. テーブルは正確に行・列を抽出してください
3. 数値はカンマを含めてそのまま文字列で保存
4. JSON以外の説明文は一切出力しないでください
5. 出力は必ずJSON形式のみとしてください

## 期待する出力形式
{
  "page_type": "そのXX",
  "page_title": "ページタイトル",
  "structured_data": {
    "フィールド名": "値"
  },
  "tables": [
    {
      "table_id": "テーブル名",
      "table_title": "テーブルタイトル",
      "headers": ["列1", "列2", "列3"],
      "rows": [
        {"列1": "値", "列2": "値", "列3": "値"}
      ]
    }
  ],
  "additional_fields": {}
}
`

// The batch prompt compresses the format example: long documents go
// through page by page and the shorter prompt keeps token usage down.
const batchPagePrompt = `
あなたは政治資金収支報告書のデータ抽出エキスパートです。

この画像は政治資金収支報告書の1ページです。
画像右上に記載されている「（そのXX）」を確認し、以下の形式でJSONを出力してください。

## 重要な指示
1. 画像右上の「（そのXX）」を正確に識別してください
2. テーブルは正確に行・列を抽出してください
3. 数値はカンマを含めてそのまま文字列で保存
4. JSON以外の説明文は一切出力しないでください

## 期待する出力形式
{
  "page_type": "そのXX",
  "page_title": "ページタイトル",
  "structured_data": {"フィールド名": "値"},
  "tables": [{"table_id": "...", "table_title": "...", "headers": [...], "rows": [...]}],
  "additional_fields": {}
}
`

func pagePrompt(batch bool) string {
	if batch {
		return batchPagePrompt
	}
	return singlePagePrompt
}
