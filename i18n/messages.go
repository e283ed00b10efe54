package i18n

// Message keys. The English text doubles as the key and as the fallback
// format string.
const (
	MsgCreatedDirectory     = "Created directory: %s"
	MsgFileNotFound         = "Error: File %s not found in %s"
	MsgConversionRequired   = "File format not supported by OpenAI API. Converting to MP3..."
	MsgConverting           = "Converting %s to mp3..."
	MsgConversionDone       = "Conversion completed successfully"
	MsgConversionFailed     = "Error during file conversion: %s"
	MsgSplitting            = "Splitting audio into chunks..."
	MsgChunkCreated         = "Created chunk %d/%d"
	MsgTranscriptionStarted = "Starting file transcription..."
	MsgTranscribingPart     = "Transcribing part %d/%d..."
	MsgSkippingPart         = "Skipping part %d due to error"
	MsgSaved                = "Transcription completed and saved to: %s"
	MsgRunFailed            = "Transcription error occurred: %s"
	MsgCleanupFailed        = "Failed to remove temporary file %s: %s"

	MsgAudioDirNotFound = "'audio' directory not found"
	MsgAvailableFiles   = "Available audio files in 'audio' directory:"
	MsgFileEntry        = "%d. %s (%s)"
	MsgPrompt           = "Enter file number to transcribe (or 0 to exit): "
	MsgTerminated       = "Program terminated"
	MsgInvalidNumber    = "Invalid file number"
	MsgNotANumber       = "Please enter a valid number"
	MsgNoFiles          = "No supported audio files found in 'audio' directory"
	MsgPlaceFiles       = "Place audio files in the 'audio' directory and run the script again"

	MsgFFmpegMissing = "ffmpeg was not found. You need to install it:"
	MsgFFmpegWindows = "Windows: choco install ffmpeg"
	MsgFFmpegMacOS   = "MacOS: brew install ffmpeg"
	MsgFFmpegLinux   = "Linux: sudo apt-get install ffmpeg"
	MsgConfigError   = "Configuration error: %s"
)

var russian = map[string]string{
	MsgCreatedDirectory:     "Создана директория: %s",
	MsgFileNotFound:         "Ошибка: файл %s не найден в %s",
	MsgConversionRequired:   "Формат файла не поддерживается OpenAI API. Конвертация в MP3...",
	MsgConverting:           "Конвертация %s в mp3...",
	MsgConversionDone:       "Конвертация успешно завершена",
	MsgConversionFailed:     "Ошибка при конвертации файла: %s",
	MsgSplitting:            "Разделение аудио на части...",
	MsgChunkCreated:         "Создана часть %d/%d",
	MsgTranscriptionStarted: "Начало транскрибации файла...",
	MsgTranscribingPart:     "Транскрибация части %d/%d...",
	MsgSkippingPart:         "Пропуск части %d из-за ошибки",
	MsgSaved:                "Транскрибация завершена и сохранена в: %s",
	MsgRunFailed:            "Произошла ошибка при транскрибации: %s",
	MsgCleanupFailed:        "Не удалось удалить временный файл %s: %s",

	MsgAudioDirNotFound: "Директория 'audio' не найдена",
	MsgAvailableFiles:   "Доступные аудиофайлы в директории 'audio':",
	MsgFileEntry:        "%d. %s (%s)",
	MsgPrompt:           "Введите номер файла для транскрибации (или 0 для выхода): ",
	MsgTerminated:       "Программа завершена",
	MsgInvalidNumber:    "Неверный номер файла",
	MsgNotANumber:       "Пожалуйста, введите корректное число",
	MsgNoFiles:          "В директории 'audio' не найдено поддерживаемых аудиофайлов",
	MsgPlaceFiles:       "Поместите аудиофайлы в директорию 'audio' и запустите скрипт снова",

	MsgFFmpegMissing: "ffmpeg не найден. Необходимо установить его:",
	MsgFFmpegWindows: "Windows: choco install ffmpeg",
	MsgFFmpegMacOS:   "MacOS: brew install ffmpeg",
	MsgFFmpegLinux:   "Linux: sudo apt-get install ffmpeg",
	MsgConfigError:   "Ошибка конфигурации: %s",
}
