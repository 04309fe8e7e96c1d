package domain

// Extraction результат прохода по строкам таблицы.
type Extraction struct {
	Assignments []Assignment
	// CurrentRatee оцениваемый, протянутый до конца таблицы.
	CurrentRatee string

	Rows        int   // всего строк данных
	HeaderRows  int   // повторные строки заголовка внутри данных
	BlankRaters int   // строки без оценивающего
	Orphans     []int // номера строк с оценивающим, но без оцениваемого
}

// RenderOptions настройки генерации выгрузок.
type RenderOptions struct {
	Dialect  Dialect
	Quoting  Quoting
	PeriodID int // заглушка periodId в JSON, реальный период подставляется позже
}

// Conversion сгенерированные выгрузки в памяти.
type Conversion struct {
	Extraction Extraction
	SQL        string
	JSON       []byte
}

// Outputs пути выходных файлов.
type Outputs struct {
	SQLPath  string
	JSONPath string
}

// Report итог одного запуска конвертации.
type Report struct {
	Assignments int
	Orphans     int
	HeaderRows  int
	SQLPath     string
	JSONPath    string
}

// ParseOptions настройки разбора ранее сгенерированного SQL.
type ParseOptions struct {
	Lowercase bool // привести email к нижнему регистру
	Dedup     bool // оставить только первое вхождение пары
}
